// Package fs builds O²L's `fs` host object: file I/O and path
// helpers. Grounded on original_source/src/Runtime/SystemLibrary.cpp's
// readText/writeText/path-helper surface, rendered with Go's os/path-
// filepath idiom the way builtins_fs.go does it.
// github.com/dustin/go-humanize supplements stat results with a
// human-readable size, a feature original_source's FileInfo struct exposes
// but spec.md's distillation dropped.
package fs

import (
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"

	"github.com/zombocoder/o2l/internal/container"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

func New() *object.HostObject {
	h := object.NewHostObject("fs")

	h.Register("readText", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "readText", "one Text path argument")
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.readText(%q): %s", path, err)
		}
		return value.Text(string(b)), nil
	})

	h.Register("writeText", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		content, ok2 := textArg(args, 1)
		if !ok || !ok2 {
			return nil, rterror.RequiresArgs("fs", "writeText", "a Text path and a Text content argument")
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.writeText(%q): %s", path, err)
		}
		return value.Nil, nil
	})

	h.Register("exists", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "exists", "one Text path argument")
		}
		_, err := os.Stat(path)
		return value.Bool(err == nil), nil
	})

	h.Register("isFile", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "isFile", "one Text path argument")
		}
		info, err := os.Stat(path)
		return value.Bool(err == nil && !info.IsDir()), nil
	})

	h.Register("isDirectory", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "isDirectory", "one Text path argument")
		}
		info, err := os.Stat(path)
		return value.Bool(err == nil && info.IsDir()), nil
	})

	h.Register("listFiles", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "listFiles", "one Text path argument")
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.listFiles(%q): %s", path, err)
		}
		elems := make([]value.Value, len(entries))
		for i, ent := range entries {
			elems[i] = value.Text(ent.Name())
		}
		return container.NewList("Text", elems), nil
	})

	h.Register("createDirectory", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "createDirectory", "one Text path argument")
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.createDirectory(%q): %s", path, err)
		}
		return value.Nil, nil
	})

	h.Register("deleteFile", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "deleteFile", "one Text path argument")
		}
		if err := os.Remove(path); err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.deleteFile(%q): %s", path, err)
		}
		return value.Nil, nil
	})

	h.Register("humanSize", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "humanSize", "one Text path argument")
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.humanSize(%q): %s", path, err)
		}
		return value.Text(humanize.Bytes(uint64(info.Size()))), nil
	})

	h.Register("basename", pathFn(filepath.Base))
	h.Register("dirname", pathFn(filepath.Dir))
	h.Register("extname", pathFn(filepath.Ext))
	h.Register("normalize", pathFn(filepath.Clean))

	h.Register("join", func(args []value.Value) (value.Value, *rterror.Error) {
		parts := make([]string, len(args))
		for i, a := range args {
			t, ok := a.(value.Text)
			if !ok {
				return nil, rterror.RequiresArgs("fs", "join", "Text arguments only")
			}
			parts[i] = string(t)
		}
		return value.Text(filepath.Join(parts...)), nil
	})

	h.Register("resolve", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "resolve", "one Text path argument")
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return value.Text(path), nil
		}
		return value.Text(abs), nil
	})

	h.Register("relative", func(args []value.Value) (value.Value, *rterror.Error) {
		base, ok1 := textArg(args, 0)
		target, ok2 := textArg(args, 1)
		if !ok1 || !ok2 {
			return nil, rterror.RequiresArgs("fs", "relative", "two Text path arguments")
		}
		rel, err := filepath.Rel(base, target)
		if err != nil {
			return nil, rterror.New(rterror.KindEvaluation, "fs.relative: %s", err)
		}
		return value.Text(rel), nil
	})

	h.Register("isAbsolute", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "isAbsolute", "one Text path argument")
		}
		return value.Bool(filepath.IsAbs(path)), nil
	})

	h.Register("splitPath", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "splitPath", "one Text path argument")
		}
		dir, file := filepath.Split(path)
		return container.NewList("Text", []value.Value{value.Text(filepath.Clean(dir)), value.Text(file)}), nil
	})

	h.Register("getParent", pathFn(filepath.Dir))

	h.Register("changeExtension", func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok1 := textArg(args, 0)
		newExt, ok2 := textArg(args, 1)
		if !ok1 || !ok2 {
			return nil, rterror.RequiresArgs("fs", "changeExtension", "a Text path and a Text extension")
		}
		ext := filepath.Ext(path)
		base := path[:len(path)-len(ext)]
		return value.Text(base + newExt), nil
	})

	return h
}

func textArg(args []value.Value, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	t, ok := args[i].(value.Text)
	return string(t), ok
}

func pathFn(f func(string) string) func([]value.Value) (value.Value, *rterror.Error) {
	return func(args []value.Value) (value.Value, *rterror.Error) {
		path, ok := textArg(args, 0)
		if !ok {
			return nil, rterror.RequiresArgs("fs", "<path helper>", "one Text path argument")
		}
		return value.Text(f(path)), nil
	}
}
