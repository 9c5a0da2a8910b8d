package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rpgo/returns-calculator/internal/domain"
	"github.com/rpgo/returns-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// errBadRequest marks malformed request parameters.
var errBadRequest = errors.New("bad request")

// projectionRequest is the JSON body of POST /api/projection. Omitted
// fields take the configured settings.
type projectionRequest struct {
	Mode        *domain.Mode     `json:"mode"`
	Amount      *money.Money     `json:"amount"`
	RatePercent *decimal.Decimal `json:"rate_percent"`
	Years       *int             `json:"years"`
}

// inputsFromQuery reads mode, amount, rate and years query parameters.
func inputsFromQuery(r *http.Request, settings domain.Settings) (domain.Inputs, error) {
	q := r.URL.Query()
	mode := settings.Mode
	if v := q.Get("mode"); v != "" {
		m, err := domain.ParseMode(v)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		mode = m
	}
	in := settings.InputsFor(mode)

	if v := q.Get("amount"); v != "" {
		m, err := money.NewMoneyFromString(v)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("%w: invalid amount %q", errBadRequest, v)
		}
		in.Amount = m
	}
	if v := q.Get("rate"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("%w: invalid rate %q", errBadRequest, v)
		}
		in.RatePercent = d
	}
	if v := q.Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("%w: invalid years %q", errBadRequest, v)
		}
		in.Years = n
	}
	return in, nil
}

// maxBodyBytes caps the size of a projection request body.
const maxBodyBytes = 1 << 20

// inputsFromBody decodes a JSON projectionRequest of at most maxBodyBytes.
func inputsFromBody(w http.ResponseWriter, r *http.Request, settings domain.Settings) (domain.Inputs, error) {
	var req projectionRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return domain.Inputs{}, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	mode := settings.Mode
	if req.Mode != nil {
		mode = *req.Mode
	}
	in := settings.InputsFor(mode)
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.RatePercent != nil {
		in.RatePercent = *req.RatePercent
	}
	if req.Years != nil {
		in.Years = *req.Years
	}
	return in, nil
}
