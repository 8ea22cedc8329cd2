package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex apur_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 1307)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix, capped at
// 12 characters, e.g. `AP_X1Z2A8QD`. Used for human-facing reference codes
// such as the assessment payment slip reference.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	UUID_PREFIX_INVOICE       = "inv"
	UUID_PREFIX_CLINIC        = "clin"
	UUID_PREFIX_FISCAL_CONFIG = "fcfg"
	UUID_PREFIX_TAX_BREAKDOWN = "brkd"
	UUID_PREFIX_ASSESSMENT    = "apur"
	UUID_PREFIX_ACCOUNT       = "acct"
	UUID_PREFIX_JOURNAL_ENTRY = "jrnl"
	UUID_PREFIX_INCOME_STMT   = "dre"
	UUID_PREFIX_BALANCE_SHEET = "bal"

	SHORT_ID_PREFIX_ASSESSMENT = "AP_"
)
