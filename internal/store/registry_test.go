package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/pathstore/internal/store/value"
)

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()

	c, err := r.Create("app", value.Int(0))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Key() != "app" {
		t.Errorf("Key() = %q, want app", c.Key())
	}
	if !r.Has("app") {
		t.Error("Has(app) = false after Create")
	}
}

func TestRegistry_Create_DuplicateKey(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Create("app", value.Int(0)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := r.Create("app", value.Int(1)); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("second Create() error = %v, want ErrDuplicateKey", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_Create_EmptyKey(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("", value.Int(0)); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Create(\"\") error = %v, want ErrEmptyKey", err)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	created, err := r.Create("app", value.Int(0))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := r.Get("app")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != created {
		t.Error("Get() returned a different container")
	}

	if _, err := r.Get("missing"); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrContainerNotFound", err)
	}
}

func TestRegistry_Keys(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		if _, err := r.Create(k, value.Int(0)); err != nil {
			t.Fatalf("Create(%s) error = %v", k, err)
		}
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestRegistry_Isolation(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	if _, err := a.Create("shared", value.Int(0)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.Has("shared") {
		t.Error("registries share state")
	}
	if _, err := b.Create("shared", value.Int(0)); err != nil {
		t.Errorf("Create() in isolated registry error = %v", err)
	}
}
