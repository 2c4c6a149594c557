package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/money"
	"github.com/autoprestige/autoprestige/internal/refdata"
)

// assumptions for whatever the message leaves out
const (
	typicalAge     = 3
	typicalMileage = 30000
	typicalEngine  = 1.5
)

var miles = message.NewPrinter(language.English)

var yearPattern = regexp.MustCompile(`\b(19[5-9]\d|20\d\d)\b`)

var greetings = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "chào": {}, "xin": {}, "alo": {},
}

type phrases struct {
	greeting, guidance, estimate, brandOnly string
}

var copyByLang = map[string]phrases{
	"vi": {
		greeting:  "Chào bạn! Hãy cho tôi biết hãng xe, dòng xe và năm sản xuất để tôi ước tính giá.",
		guidance:  "Tôi chưa nhận ra mẫu xe trong câu hỏi. Hãy thử: 'Giá xe Ford Fiesta 2019?'",
		estimate:  "Ước tính cho %s %s đời %d (khoảng %s dặm, %s, %s): %s.",
		brandOnly: "Tôi chưa rõ dòng xe %s bạn hỏi. Một mẫu %s đời %d phổ biến có giá khoảng %s.",
	},
	"en": {
		greeting:  "Hi! Tell me the manufacturer, model and year and I will estimate a price.",
		guidance:  "I could not spot a vehicle in that question. Try: 'How much is a 2019 Ford Fiesta?'",
		estimate:  "Estimate for a %s %s from %d (about %s miles, %s, %s): %s.",
		brandOnly: "I am not sure which %s model you mean. A typical %s from %d goes for about %s.",
	},
}

// Heuristic is an offline responder: it recognises a manufacturer and model
// mention and answers with an estimate, otherwise with a guidance message.
type Heuristic struct {
	pricer Pricer
	lang   string
	now    func() time.Time
}

func NewHeuristic(p Pricer, lang string) *Heuristic {
	if _, ok := copyByLang[lang]; !ok {
		lang = refdata.Languages[0]
	}
	return &Heuristic{pricer: p, lang: lang, now: time.Now}
}

// Reply never blocks on I/O; ctx is honoured for parity with remote responders.
func (h *Heuristic) Reply(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	txt := copyByLang[h.lang]
	brand, rest, ok := refdata.FindManufacturer(message)
	if !ok {
		if isGreeting(message) {
			return txt.greeting, nil
		}
		return txt.guidance, nil
	}

	in := api.ValuationInput{
		Manufacturer: brand,
		Year:         h.now().Year() - typicalAge,
		Transmission: refdata.Transmissions[0],
		Mileage:      typicalMileage,
		FuelType:     refdata.FuelTypes[0],
		EngineSize:   typicalEngine,
	}
	if m := yearPattern.FindString(message); m != "" {
		in.Year, _ = strconv.Atoi(m)
	}
	for _, ft := range refdata.FuelTypes {
		if containsWord(message, ft) {
			in.FuelType = ft
		}
	}
	for _, tr := range refdata.Transmissions {
		if containsWord(message, tr) {
			in.Transmission = tr
		}
	}

	model, found := findModel(brand, rest)
	if !found {
		in.Model = refdata.FirstModel(brand)
		price := money.Format(h.pricer.Estimate(in), "USD")
		return fmt.Sprintf(txt.brandOnly, brand, brand, in.Year, price), nil
	}
	in.Model = model
	price := money.Format(h.pricer.Estimate(in), "USD")
	return fmt.Sprintf(txt.estimate, brand, model, in.Year,
		miles.Sprintf("%d", in.Mileage), in.FuelType, in.Transmission, price), nil
}

// findModel tries each word and each adjacent pair, so "3 Series" and
// "Santa Fe" resolve as well as "Fiesta".
func findModel(brand string, words []string) (string, bool) {
	for i := range words {
		if i+1 < len(words) {
			if m, ok := refdata.MatchModel(brand, words[i]+" "+words[i+1]); ok {
				return m, true
			}
		}
		if yearPattern.MatchString(words[i]) {
			continue
		}
		if m, ok := refdata.MatchModel(brand, words[i]); ok {
			return m, true
		}
	}
	return "", false
}

func isGreeting(s string) bool {
	for t := range tokens(strings.ToLower(s)) {
		if _, ok := greetings[t]; ok {
			return true
		}
	}
	return false
}

func containsWord(s, word string) bool {
	_, ok := tokens(strings.ToLower(s))[strings.ToLower(word)]
	return ok
}

func tokens(s string) map[string]struct{} {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '?' || r == '!' || r == '.' || r == '\'' || r == '\n'
	})
	out := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		out[p] = struct{}{}
	}
	return out
}
