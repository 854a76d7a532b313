package main

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jattr/attr"
	"github.com/dhamidi/jattr/classfile"
	"github.com/dhamidi/jattr/format"
)

var log = commonlog.GetLogger("jattr.attrdump")

// input is one class file to decode. Name is the file path, or
// jar!/entry for jar members.
type input struct {
	Name string
	Data []byte
}

func run(ctx context.Context, w io.Writer, cfg Config, paths []string) error {
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	enc, err := format.New(cfg.Format, w)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(paths)
	if err != nil {
		return err
	}
	log.Infof("decoding %d class files with %d workers", len(inputs), cfg.Workers)

	classes, err := decodeAll(ctx, inputs, reg, cfg.Workers)
	if err != nil {
		return err
	}
	for i, cf := range classes {
		if err := enc.Encode(cf); err != nil {
			return fmt.Errorf("encode %s: %w", inputs[i].Name, err)
		}
	}
	return nil
}

// collectInputs expands paths into class files. Directories are walked
// for .class files and jars are opened for their .class entries.
func collectInputs(paths []string) ([]input, error) {
	var inputs []input
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		switch {
		case info.IsDir():
			err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.HasSuffix(p, ".class") {
					return nil
				}
				data, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				inputs = append(inputs, input{Name: p, Data: data})
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", path, err)
			}
		case strings.HasSuffix(path, ".jar"):
			entries, err := readJar(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, entries...)
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{Name: path, Data: data})
		}
	}
	return inputs, nil
}

func readJar(path string) ([]input, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open jar: %w", err)
	}
	defer zr.Close()

	var inputs []input
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s!/%s: %w", path, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s!/%s: %w", path, f.Name, err)
		}
		inputs = append(inputs, input{Name: path + "!/" + f.Name, Data: data})
	}
	return inputs, nil
}

// decodeAll parses inputs concurrently. Results keep the input order; the
// first failure cancels the remaining work.
func decodeAll(ctx context.Context, inputs []input, reg *attr.Registry, workers int) ([]*classfile.ClassFile, error) {
	classes := make([]*classfile.ClassFile, len(inputs))
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cf, err := classfile.ParseBytes(in.Data, classfile.WithRegistry(reg))
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			log.Debugf("decoded %s: %d class attributes", in.Name, len(cf.Attributes))
			classes[i] = cf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return classes, nil
}
