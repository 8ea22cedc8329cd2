package clinic

import "context"

// Repository defines the read-only clinic lookups consumed by the engine.
type Repository interface {
	Get(ctx context.Context, id string) (*Clinic, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*Clinic, error)
}
