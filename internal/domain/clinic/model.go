package clinic

import (
	"github.com/medfiscal/medfiscal/internal/types"
)

// Clinic is the read-only view of a clinic this engine needs: identity and
// the registered tax id invoices are matched against. Clinic management lives
// in an upstream service.
type Clinic struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	LegalName    string `db:"legal_name" json:"legal_name"`
	CNPJ         string `db:"cnpj" json:"cnpj"`
	MunicipalReg string `db:"municipal_reg" json:"municipal_reg"`
	CityCode     string `db:"city_code" json:"city_code"`
	types.BaseModel
}
