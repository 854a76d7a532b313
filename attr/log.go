package attr

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("jattr.attr")
