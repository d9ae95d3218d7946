package prediction

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/owarai/internal/domain/model"
)

// Payload is a decoded stored prediction. When Valid is false Entries is
// empty and Err says why; callers treat it as "no predictions".
type Payload struct {
	Entries []model.PredictionEntry
	Valid   bool
	Err     error
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func entryValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("prediction_type", func(fl validator.FieldLevel) bool {
			return model.PredictionType(fl.Field().String()).Valid()
		})
	})
	return validate
}

func invalid(err error) Payload {
	return Payload{Err: fmt.Errorf("%w: %v", ErrInvalidPayload, err)}
}

// Decode parses a JSON array of prediction entries. Any entry failing the
// schema invalidates the whole payload.
func Decode(raw []byte) Payload {
	var entries []model.PredictionEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return invalid(err)
	}
	if entries == nil {
		return invalid(fmt.Errorf("payload is not an array"))
	}

	v := entryValidator()
	for i := range entries {
		if err := v.Struct(&entries[i]); err != nil {
			return invalid(fmt.Errorf("entry %d: %w", i, err))
		}
	}
	return Payload{Entries: entries, Valid: true}
}

// DecodeValue decodes a payload held as a generic value, such as a column
// read from a document store. Strings and byte slices are parsed as JSON.
func DecodeValue(v any) Payload {
	switch raw := v.(type) {
	case nil:
		return invalid(fmt.Errorf("payload is empty"))
	case []byte:
		return Decode(raw)
	case string:
		return Decode([]byte(raw))
	}
	b, err := json.Marshal(v)
	if err != nil {
		return invalid(err)
	}
	return Decode(b)
}
