package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValuationInput is the vehicle description sent to /predict.
type ValuationInput struct {
	Manufacturer string  `json:"manufacturer"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Transmission string  `json:"transmission"`
	Mileage      int     `json:"mileage"`
	FuelType     string  `json:"fuelType"`
	Tax          float64 `json:"tax"`
	MPG          float64 `json:"mpg"`
	EngineSize   float64 `json:"engineSize"`
}

// PriceField is the batch column that carries the predicted USD price.
const PriceField = "predicted_price"

// BatchRow is one predicted record of a batch upload. Columns keeps the
// backend's column order; Values holds the decoded JSON values.
type BatchRow struct {
	Columns        []string
	Values         map[string]any
	PredictedPrice float64
}

// Get returns a column value and whether the column was present.
func (r BatchRow) Get(col string) (any, bool) {
	v, ok := r.Values[col]
	return v, ok
}

func (r *BatchRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("batch row: expected object, got %v", tok)
	}
	r.Columns = nil
	r.Values = map[string]any{}
	r.PredictedPrice = 0
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("batch row %q: %w", key, err)
		}
		if _, seen := r.Values[key]; !seen {
			r.Columns = append(r.Columns, key)
		}
		r.Values[key] = normalize(raw)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if v, ok := r.Values[PriceField]; ok {
		r.PredictedPrice = toFloat(v)
	}
	return nil
}

func (r BatchRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalize turns json.Number into int64 when integral, else float64.
func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, _ := n.Float64()
	return f
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return 0
}

// HistoryRecord is one persisted valuation as served by /history.
type HistoryRecord struct {
	ID             int     `json:"id"`
	Timestamp      string  `json:"timestamp"`
	Manufacturer   string  `json:"manufacturer"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Transmission   string  `json:"transmission"`
	Mileage        float64 `json:"mileage"`
	FuelType       string  `json:"fuelType"`
	EngineSize     float64 `json:"engineSize"`
	PredictedPrice float64 `json:"predicted_price"`
}

// Stat is one headline card of the dashboard.
type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	IsPos  bool   `json:"isPos"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

type ChartPoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type BrandShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DashboardStats is the backend-computed aggregate document.
type DashboardStats struct {
	Stats     []Stat          `json:"stats"`
	ChartData []ChartPoint    `json:"chart_data"`
	BrandData []BrandShare    `json:"brand_data"`
	Recent    []HistoryRecord `json:"recent"`
}

// Empty reports whether the backend has nothing to aggregate yet.
func (d DashboardStats) Empty() bool { return len(d.Stats) == 0 }

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type predictResponse struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

type batchResponse struct {
	Data []BatchRow `json:"data"`
}
