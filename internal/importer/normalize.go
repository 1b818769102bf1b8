package importer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/autoparts-eu/brakecat/internal/models"
)

// Sentinel strings treated as "value absent" before any type-specific
// parsing. Compared case-insensitively after trimming.
var badNulls = map[string]struct{}{
	"":     {},
	"-":    {},
	"—":    {},
	"–":    {},
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
	"na":   {},
	"0":    {},
}

// IsBadNull reports whether the raw value is one of the absent sentinels.
func IsBadNull(s string) bool {
	_, ok := badNulls[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

var (
	numberRe = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)
	nonDigit = regexp.MustCompile(`\D`)
	tokenRe  = regexp.MustCompile(`[A-Za-z0-9]+(?:-[A-Za-z0-9]+)?`)
)

// ParseDecimal extracts the first signed numeric token, treating a comma
// as the decimal separator. Malformed input yields nil, never an error.
func ParseDecimal(raw string) *decimal.Decimal {
	if IsBadNull(raw) {
		return nil
	}
	m := numberRe.FindString(strings.TrimSpace(raw))
	if m == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return nil
	}
	return &d
}

// ParseInt strips everything but digits and minus signs before parsing.
func ParseInt(raw string) *int {
	if IsBadNull(raw) {
		return nil
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

// ParseEAN strips non-digits and accepts 8 to 14 remaining digits. No
// checksum validation is performed.
func ParseEAN(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	digits := nonDigit.ReplaceAllString(strings.TrimSpace(raw), "")
	if len(digits) < 8 || len(digits) > 14 {
		return nil
	}
	return &digits
}

// ParseAxle maps free text onto the axle codes. The combined check runs
// first so "front and rear" cannot be misread as FRONT.
func ParseAxle(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "front") && strings.Contains(s, "rear"),
		strings.HasPrefix(s, "b"):
		return strPtr(models.AxleBoth)
	case strings.HasPrefix(s, "f") || strings.Contains(s, "front"):
		return strPtr(models.AxleFront)
	case strings.HasPrefix(s, "r") || strings.Contains(s, "rear"):
		return strPtr(models.AxleRear)
	}
	return nil
}

// ParseAssemblySide maps free text onto assembly side codes.
func ParseAssemblySide(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "left") && strings.Contains(s, "right"),
		strings.HasPrefix(s, "b"):
		return strPtr(models.SideBoth)
	case strings.Contains(s, "left"):
		return strPtr(models.SideLeft)
	case strings.Contains(s, "right"):
		return strPtr(models.SideRight)
	}
	if su := strings.ToUpper(s); su == models.SideLeft || su == models.SideRight ||
		su == models.SideBoth || su == models.SideNone {
		return strPtr(su)
	}
	return nil
}

// ParseDiscType maps free text onto solid/ventilated codes.
func ParseDiscType(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "v"):
		return strPtr(models.DiscVentilated)
	case strings.HasPrefix(s, "s"):
		return strPtr(models.DiscSolid)
	}
	return nil
}

// ParseMaterial maps free text onto material codes. Substring priority
// matters: "cast iron" must win before any looser match.
func ParseMaterial(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "aluminium"):
		return strPtr(models.MaterialAluminium)
	case strings.Contains(s, "cast iron"):
		return strPtr(models.MaterialCastIron)
	case strings.Contains(s, "plastic"):
		return strPtr(models.MaterialPlastic)
	case strings.Contains(s, "steel"):
		return strPtr(models.MaterialSteel)
	}
	if su := strings.ToUpper(s); su == models.MaterialAluminium || su == models.MaterialCastIron ||
		su == models.MaterialPlastic || su == models.MaterialSteel {
		return strPtr(su)
	}
	return nil
}

// ParseCaliperPosition maps free text onto caliper position codes.
func ParseCaliperPosition(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "left") && strings.Contains(s, "right"),
		strings.HasPrefix(s, "b"):
		return strPtr(models.PositionBoth)
	case strings.Contains(s, "left"):
		return strPtr(models.PositionLeft)
	case strings.Contains(s, "right"):
		return strPtr(models.PositionRight)
	}
	if su := strings.ToUpper(s); su == models.PositionLeft || su == models.PositionRight ||
		su == models.PositionBoth {
		return strPtr(su)
	}
	return nil
}

// ParseWearIndicator maps free text onto wear indicator codes.
func ParseWearIndicator(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "acoustic"):
		return strPtr(models.WearAcoustic)
	case strings.Contains(s, "electric"):
		return strPtr(models.WearElectric)
	case strings.Contains(s, "without"):
		return strPtr(models.WearWithout)
	case strings.Contains(s, "prepared"):
		return strPtr(models.WearPrepared)
	}
	if su := strings.ToUpper(s); su == models.WearWithout || su == models.WearAcoustic ||
		su == models.WearElectric || su == models.WearPrepared {
		return strPtr(su)
	}
	return nil
}

// ParsePadAccessoryType maps free text onto pad accessory type codes.
func ParsePadAccessoryType(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "assembly kit"):
		return strPtr(models.PadAccAssemblyKit)
	case strings.Contains(s, "wear indicator"):
		return strPtr(models.PadAccWearIndicator)
	}
	if su := strings.ToUpper(s); su == models.PadAccWearIndicator || su == models.PadAccAssemblyKit {
		return strPtr(su)
	}
	return nil
}

// ParseTokens upper-cases the input, extracts alphanumeric tokens with an
// optional hyphenated tail, joins them with ", " and clamps the joined
// string to maxLen. Truncation after the join may cut the last token short;
// that lossy behavior is deliberate.
func ParseTokens(raw string, maxLen int) *string {
	if IsBadNull(raw) {
		return nil
	}
	collapsed := strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
	tokens := tokenRe.FindAllString(collapsed, -1)
	if len(tokens) == 0 {
		return nil
	}
	out := truncate(strings.Join(tokens, ", "), maxLen)
	return &out
}

// ParseMaxLenText collapses whitespace and clamps to maxLen.
func ParseMaxLenText(raw string, maxLen int) *string {
	if IsBadNull(raw) {
		return nil
	}
	out := truncate(strings.Join(strings.Fields(raw), " "), maxLen)
	return &out
}

// ParseText trims the value and treats bad-null sentinels as absent.
func ParseText(raw string) *string {
	if IsBadNull(raw) {
		return nil
	}
	out := strings.TrimSpace(raw)
	return &out
}

// ParsePreAssembled: "not pre-assembled" style phrasing flips to false,
// any other supplied phrasing means true. Absent stays absent so a missing
// column leaves the stored value alone.
func ParsePreAssembled(raw string) *bool {
	if IsBadNull(raw) {
		return nil
	}
	v := !strings.Contains(strings.ToLower(raw), "not")
	return &v
}

// ParseManualValve: only an explicit "manual" phrasing means true.
func ParseManualValve(raw string) *bool {
	if IsBadNull(raw) {
		return nil
	}
	v := strings.Contains(strings.ToLower(raw), "manual")
	return &v
}

// ParseParkingBrake always resolves to a concrete boolean; bad-nulls give
// the documented default false.
func ParseParkingBrake(raw string) *bool {
	v := !IsBadNull(raw) && strings.Contains(strings.ToLower(raw), "parking brake")
	return &v
}

// ParseWithPhrase: "with ..." phrasing means true, anything else false.
func ParseWithPhrase(raw string) *bool {
	v := !IsBadNull(raw) && strings.Contains(strings.ToLower(raw), "with")
	return &v
}

// NormalizeValue applies the normalizer bound to one field spec.
func NormalizeValue(spec models.FieldSpec, raw string) models.Value {
	switch spec.Kind {
	case models.KindText:
		return models.Value{Str: ParseText(raw)}
	case models.KindMaxLen:
		return models.Value{Str: ParseMaxLenText(raw, spec.MaxLen)}
	case models.KindTokens:
		return models.Value{Str: ParseTokens(raw, spec.MaxLen)}
	case models.KindDecimal:
		return models.Value{Dec: ParseDecimal(raw)}
	case models.KindInt:
		return models.Value{Int: ParseInt(raw)}
	case models.KindEAN:
		return models.Value{Str: ParseEAN(raw)}
	case models.KindAxle:
		return models.Value{Str: ParseAxle(raw)}
	case models.KindSide:
		return models.Value{Str: ParseAssemblySide(raw)}
	case models.KindDiscType:
		return models.Value{Str: ParseDiscType(raw)}
	case models.KindMaterial:
		return models.Value{Str: ParseMaterial(raw)}
	case models.KindCaliperPosition:
		return models.Value{Str: ParseCaliperPosition(raw)}
	case models.KindWearIndicator:
		return models.Value{Str: ParseWearIndicator(raw)}
	case models.KindPadAccessoryType:
		return models.Value{Str: ParsePadAccessoryType(raw)}
	case models.KindBoolPreAssembled:
		return models.Value{Bool: ParsePreAssembled(raw)}
	case models.KindBoolManualValve:
		return models.Value{Bool: ParseManualValve(raw)}
	case models.KindBoolParkingBrake:
		return models.Value{Bool: ParseParkingBrake(raw)}
	case models.KindBoolWith:
		return models.Value{Bool: ParseWithPhrase(raw)}
	}
	return models.Value{Str: ParseText(raw)}
}

// NormalizeRow resolves aliases and normalizes every schema field of one
// source row. Fields whose columns the file does not carry are omitted
// entirely so in-place updates keep their stored values.
func NormalizeRow(pt *models.ProductType, row map[string]string, headerNorm map[string]string) models.Fields {
	fs := make(models.Fields, len(pt.Schema))
	for field, spec := range pt.Schema {
		raw, present := resolveRaw(row, headerNorm, field, pt.Aliases[field])
		if !present {
			continue
		}
		fs[field] = NormalizeValue(spec, raw)
	}
	return fs
}

func strPtr(s string) *string { return &s }

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
