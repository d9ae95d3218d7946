// Package repository loads snapshots of raw records and memoizes the
// rankings computed from them.
package repository

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/owarai/internal/domain/model"
)

// Store provides point-in-time snapshots of performers, events,
// performances and stored predictions.
type Store interface {
	// Snapshot returns a fresh snapshot. Callers must not mutate it.
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// FileStore reads a snapshot from a YAML or JSON document on disk.
type FileStore struct {
	path  string
	newID func() string
}

// NewFileStore creates a store reading path on every call.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:  path,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

// Snapshot implements Store. Snapshots without an id get a random one so
// that cached rankings of different files never collide.
func (s *FileStore) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.path == "" {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotLoad, ErrEmptyPath)
	}

	// YAML is a superset of JSON, so one parser covers both formats.
	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrSnapshotLoad, s.path, err)
	}

	var snap model.Snapshot
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				dateHook(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &snap,
		},
	}
	if err := k.UnmarshalWithConf("", &snap, conf); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrSnapshotLoad, s.path, err)
	}

	if snap.ID == "" {
		snap.ID = s.newID()
	}
	return &snap, nil
}

var dateType = reflect.TypeOf(model.Date{})

// dateHook turns timestamps produced by the parser into calendar dates.
// Strings are left to the text unmarshaler hook.
func dateHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != dateType {
			return data, nil
		}
		if t, ok := data.(time.Time); ok {
			return model.NewDate(t.Date()), nil
		}
		return data, nil
	}
}
