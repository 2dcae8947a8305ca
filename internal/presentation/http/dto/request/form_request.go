package request

import (
	"fmt"
	"strconv"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
)

// FormRequest carries form field values keyed by their form names, for
// example {"sirketAdi": "Test A.Ş.", "kalemler[0].miktar": 2}.
type FormRequest map[string]any

// Values renders every value the way a form input would hold it.
func (r FormRequest) Values() map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(x)
		}
	}
	return out
}

// RecordRequest is a raw row keyed by persisted column names.
type RecordRequest map[string]any

func (r RecordRequest) Record() domainRepo.Record {
	return domainRepo.Record(r)
}

// ProbeRequest asks for an image reference to be tested.
type ProbeRequest struct {
	URL string `json:"url" binding:"required"`
}
