package domain

// CanonicalField is one of the fixed identity attributes the extractor understands
type CanonicalField string

const (
	FieldName     CanonicalField = "name"
	FieldAge      CanonicalField = "age"
	FieldGender   CanonicalField = "gender"
	FieldDOB      CanonicalField = "dob"
	FieldAddress  CanonicalField = "address"
	FieldCountry  CanonicalField = "country"
	FieldPhone    CanonicalField = "phone"
	FieldEmail    CanonicalField = "email"
	FieldIDNumber CanonicalField = "id_number"
)

// CanonicalFields lists every canonical field in document order.
// An ExtractionResult always carries exactly these keys.
var CanonicalFields = []CanonicalField{
	FieldName,
	FieldAge,
	FieldGender,
	FieldDOB,
	FieldAddress,
	FieldCountry,
	FieldPhone,
	FieldEmail,
	FieldIDNumber,
}

// IsCanonical reports whether f belongs to the closed field vocabulary
func (f CanonicalField) IsCanonical() bool {
	for _, c := range CanonicalFields {
		if c == f {
			return true
		}
	}
	return false
}

// FieldValue is the resolved value of one field. Both members are nil while
// the field is unresolved.
type FieldValue struct {
	Value      *string  `json:"value" yaml:"value"`
	Confidence *float64 `json:"confidence" yaml:"confidence"`
}

// NewFieldValue builds a resolved value
func NewFieldValue(value string, confidence float64) FieldValue {
	return FieldValue{Value: &value, Confidence: &confidence}
}

// IsSet reports whether the field holds a non-empty value
func (v FieldValue) IsSet() bool {
	return v.Value != nil && *v.Value != ""
}

// ValueOrEmpty returns the value, or "" when unresolved
func (v FieldValue) ValueOrEmpty() string {
	if v.Value == nil {
		return ""
	}
	return *v.Value
}

// ConfidenceOrZero returns the confidence, or 0 when unresolved
func (v FieldValue) ConfidenceOrZero() float64 {
	if v.Confidence == nil {
		return 0
	}
	return *v.Confidence
}

// ExtractionResult maps every canonical field to its resolved value
type ExtractionResult map[CanonicalField]FieldValue

// NewExtractionResult returns a result with all canonical fields unresolved
func NewExtractionResult() ExtractionResult {
	result := make(ExtractionResult, len(CanonicalFields))
	for _, f := range CanonicalFields {
		result[f] = FieldValue{}
	}
	return result
}

// ResolvedCount returns how many fields carry a value
func (r ExtractionResult) ResolvedCount() int {
	n := 0
	for _, v := range r {
		if v.IsSet() {
			n++
		}
	}
	return n
}
