package classfile

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("jattr.classfile")
