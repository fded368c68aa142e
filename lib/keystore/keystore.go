package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	configlibsql "linkedin-dashboard/lib/configutil/libsql"
	"linkedin-dashboard/lib/keystore/db"
	"linkedin-dashboard/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/keystore")

// CredentialKey is where the API key is stored.
const CredentialKey = "rapidapi_key"

var ErrNotFound = errors.New("key not found")

// Store is a persistent string key-value store.
type Store struct {
	db  *sql.DB
	qry *db.Queries
	tel telemetry.API
}

// Open opens (and creates if needed) the store described by config.
func Open(config configlibsql.Struct, tel telemetry.API) (*Store, error) {
	database, err := config.OpenDB(db.Schema)
	if err != nil {
		return nil, fmt.Errorf("open keystore: %w", err)
	}
	return New(database, tel), nil
}

// New wraps an already opened database, the schema must already be applied.
func New(database *sql.DB, tel telemetry.API) *Store {
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Store{
		db:  database,
		qry: db.New(database),
		tel: telemetry.NewScopedAPI("keystore", tel),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("key", key))

	value, err := s.qry.Get(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken("get", key, err)
		return "", err
	}
	return value, nil
}

// Set stores a value, setting an empty value removes the key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if value == "" {
		return s.Remove(ctx, key)
	}

	ctx, span := tracer.Start(ctx, "Set")
	defer span.End()
	span.SetAttributes(attribute.String("key", key))

	err := s.qry.Set(ctx, db.SetParams{Key: key, Value: value})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken("set", key, err)
		return err
	}
	return nil
}

// Remove deletes a key, removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "Remove")
	defer span.End()
	span.SetAttributes(attribute.String("key", key))

	err := s.qry.Remove(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.tel.ReportBroken("remove", key, err)
		return err
	}
	return nil
}

// Credential returns the stored API key, or "" when none is stored.
func (s *Store) Credential(ctx context.Context) (string, error) {
	value, err := s.Get(ctx, CredentialKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

func (s *Store) SetCredential(ctx context.Context, value string) error {
	return s.Set(ctx, CredentialKey, value)
}

func (s *Store) ClearCredential(ctx context.Context) error {
	return s.Remove(ctx, CredentialKey)
}
