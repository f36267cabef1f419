package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/codebase"
)

var errNotFound = errors.New("not found")

// snapshot loads the configured and flagged source roots, or the
// working directory when there are none.
func (a *app) snapshot(ctx context.Context) (*codebase.Snapshot, error) {
	roots := append(append([]string(nil), a.cfg.Sources...), a.sources...)
	if len(roots) == 0 {
		roots = []string{"."}
	}
	ws := codebase.New(roots, a.cfg.WorkspaceOptions()...)
	if err := ws.ScanAll(); err != nil {
		return nil, err
	}
	snap, err := ws.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (a *app) workers() int {
	if a.cfg.Workers > 0 {
		return a.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// element resolves text, relative to the element named by contextName
// when one is given.
func element(snap *codebase.Snapshot, text, contextName string) (java.Element, error) {
	var ctx java.Element
	if contextName != "" {
		c, err := snap.Signatures.Resolve(nil, contextName)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("context %s: %w", contextName, errNotFound)
		}
		ctx = c
	}
	e, err := snap.Signatures.Resolve(ctx, text)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%s: %w", text, errNotFound)
	}
	return e, nil
}

func describe(e java.Element) string {
	return e.Kind().String() + " " + e.QualifiedName()
}
