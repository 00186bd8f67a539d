// Package revalidate announces which public-facing views a mutation made
// stale. The announcement is fire-and-forget: delivery failures are logged,
// never surfaced to the mutation's caller.
package revalidate

import (
	"context"
	"log"
)

// Signal announces a set of stale paths to whoever serves the public site.
type Signal interface {
	Invalidate(ctx context.Context, paths []string)
}

// Per-mutation path sets. These are data, kept next to the Signal so anyone
// adding a mutation declares its stale views here.

// DevelopmentPaths covers any create/update/delete/progress write on a
// development.
func DevelopmentPaths(id string) []string {
	paths := []string{"/admin/desarrollos", "/desarrollos", "/"}
	if id != "" {
		paths = append(paths, "/desarrollos/"+id)
	}
	return paths
}

// PropertyPaths covers property deletes (the only property write in scope).
func PropertyPaths(id string) []string {
	paths := []string{"/admin/propiedades", "/propiedades", "/"}
	if id != "" {
		paths = append(paths, "/propiedades/"+id)
	}
	return paths
}

// FavoritePaths covers a favorite toggle: only the caller-facing list is
// user-specific, public pages are unaffected.
func FavoritePaths() []string {
	return []string{"/favoritos"}
}

// LeadPaths covers a lead creation.
func LeadPaths() []string {
	return []string{"/admin/leads"}
}

// CMSDefaultPaths is used when a CMS webhook names no paths.
func CMSDefaultPaths() []string {
	return []string{"/"}
}

// Multi fans an announcement out to several signals.
type Multi []Signal

func (m Multi) Invalidate(ctx context.Context, paths []string) {
	for _, s := range m {
		s.Invalidate(ctx, paths)
	}
}

// Nop discards announcements. Used in tests and when no transport is
// configured.
type Nop struct{}

func (Nop) Invalidate(ctx context.Context, paths []string) {}

// Logger is a Signal decorator that records what was announced.
type Logger struct {
	Next Signal
}

func (l Logger) Invalidate(ctx context.Context, paths []string) {
	log.Printf("revalidate: announcing %d stale paths: %v", len(paths), paths)
	if l.Next != nil {
		l.Next.Invalidate(ctx, paths)
	}
}
