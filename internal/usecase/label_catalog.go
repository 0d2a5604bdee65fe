package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mosipdecode/backend/internal/domain"
)

// CatalogDefinition is the static description of one language's labels
type CatalogDefinition struct {
	Language string
	Aliases  []string
	Labels   map[domain.CanonicalField][]string
	// WordBoundary wraps labels in \b. Only meaningful for scripts with word separators.
	WordBoundary bool
	// NameStopWords truncate a name value. Defaults to the labels of every other field.
	NameStopWords []string
}

// LabelCatalog is a compiled, read-only label set for one language
type LabelCatalog struct {
	language     string
	aliases      []string
	labels       map[domain.CanonicalField][]string
	labelToField map[string]domain.CanonicalField
	labelPattern *regexp.Regexp
	namePattern  *regexp.Regexp
}

// Built-in catalogs
var (
	LatinCatalog = CatalogDefinition{
		Language: "en",
		Aliases:  []string{"eng", "english", "latin"},
		Labels: map[domain.CanonicalField][]string{
			domain.FieldName:     {"full name", "name"},
			domain.FieldAge:      {"age", "years", "y/o"},
			domain.FieldGender:   {"gender", "sex"},
			domain.FieldDOB:      {"dob", "date of birth", "birthdate", "birth date"},
			domain.FieldAddress:  {"address", "addr"},
			domain.FieldCountry:  {"country", "nation", "nationality"},
			domain.FieldPhone:    {"phone number", "phone", "mobile", "tel", "telephone", "contact"},
			domain.FieldEmail:    {"email", "e-mail", "email address"},
			domain.FieldIDNumber: {"id number", "id", "passport no", "passport number", "passport"},
		},
		WordBoundary:  true,
		NameStopWords: []string{"age", "gender", "address", "country", "phone", "email", "id", "dob", "passport"},
	}

	ChineseCatalog = CatalogDefinition{
		Language: "zh",
		Aliases:  []string{"ch", "chi_sim", "chinese", "zh-cn"},
		Labels: map[domain.CanonicalField][]string{
			domain.FieldName:     {"姓名", "名字"},
			domain.FieldAge:      {"年龄", "岁"},
			domain.FieldGender:   {"性别"},
			domain.FieldDOB:      {"出生日期", "生日"},
			domain.FieldAddress:  {"地址", "住址"},
			domain.FieldCountry:  {"国家", "国籍"},
			domain.FieldPhone:    {"电话", "手机号码", "联系电话"},
			domain.FieldEmail:    {"电子邮件", "邮箱"},
			domain.FieldIDNumber: {"身份证号码", "护照号码", "证件号码", "ID"},
		},
	}

	KoreanCatalog = CatalogDefinition{
		Language: "ko",
		Aliases:  []string{"kor", "korean"},
		Labels: map[domain.CanonicalField][]string{
			domain.FieldName:     {"이름", "성명"},
			domain.FieldAge:      {"나이", "연세"},
			domain.FieldGender:   {"성별"},
			domain.FieldDOB:      {"생년월일"},
			domain.FieldAddress:  {"주소"},
			domain.FieldCountry:  {"국가", "국적"},
			domain.FieldPhone:    {"전화번호", "연락처", "핸드폰"},
			domain.FieldEmail:    {"이메일", "이메일 주소"},
			domain.FieldIDNumber: {"주민등록번호", "여권번호", "ID"},
		},
	}
)

// DefaultCatalogs returns the built-in catalog definitions
func DefaultCatalogs() []CatalogDefinition {
	return []CatalogDefinition{LatinCatalog, ChineseCatalog, KoreanCatalog}
}

// NewLabelCatalog compiles a catalog definition.
// Labels are sorted by descending rune length so the longest variant wins the alternation.
func NewLabelCatalog(def CatalogDefinition) (*LabelCatalog, error) {
	if def.Language == "" {
		return nil, fmt.Errorf("catalog language is required")
	}

	labelToField := make(map[string]domain.CanonicalField)
	labels := make(map[domain.CanonicalField][]string, len(def.Labels))
	for _, field := range domain.CanonicalFields {
		for _, label := range def.Labels[field] {
			key := strings.ToLower(strings.TrimSpace(label))
			if key == "" {
				continue
			}
			if owner, ok := labelToField[key]; ok && owner != field {
				return nil, fmt.Errorf("catalog %s: label %q registered for both %s and %s", def.Language, label, owner, field)
			}
			labelToField[key] = field
			labels[field] = append(labels[field], label)
		}
	}
	for field := range def.Labels {
		if !field.IsCanonical() {
			return nil, fmt.Errorf("catalog %s: unknown field %q", def.Language, field)
		}
	}
	if len(labelToField) == 0 {
		return nil, fmt.Errorf("catalog %s has no labels", def.Language)
	}

	variants := make([]string, 0, len(labelToField))
	for key := range labelToField {
		variants = append(variants, key)
	}

	labelPattern, err := regexp.Compile(`(?is)` + alternation(variants, def.WordBoundary) + `\s*:?\s*`)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", def.Language, err)
	}

	stopWords := def.NameStopWords
	if len(stopWords) == 0 {
		for key, field := range labelToField {
			if field != domain.FieldName {
				stopWords = append(stopWords, key)
			}
		}
	}
	namePattern, err := regexp.Compile(`(?is)` + alternation(stopWords, def.WordBoundary) + `.*$`)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", def.Language, err)
	}

	return &LabelCatalog{
		language:     strings.ToLower(def.Language),
		aliases:      def.Aliases,
		labels:       labels,
		labelToField: labelToField,
		labelPattern: labelPattern,
		namePattern:  namePattern,
	}, nil
}

// alternation builds a capturing group of quoted words, longest first
func alternation(words []string, wordBoundary bool) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(sorted[i]), utf8.RuneCountInString(sorted[j])
		if li != lj {
			return li > lj
		}
		return sorted[i] < sorted[j]
	})

	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
		if wordBoundary || isASCIIWord(w) {
			quoted[i] = `\b` + quoted[i] + `\b`
		}
	}

	return `(` + strings.Join(quoted, "|") + `)`
}

// isASCIIWord reports whether s is made of ASCII letters and digits only.
// Such labels get word boundaries even in CJK catalogs so "ID" does not fire inside an email.
func isASCIIWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// Language returns the catalog's primary language tag
func (c *LabelCatalog) Language() string {
	return c.language
}

// Labels returns the label variants registered for a field
func (c *LabelCatalog) Labels(field domain.CanonicalField) []string {
	return append([]string(nil), c.labels[field]...)
}

// FieldFor resolves a matched label to its field
func (c *LabelCatalog) FieldFor(label string) (domain.CanonicalField, bool) {
	field, ok := c.labelToField[strings.ToLower(label)]
	return field, ok
}

// CatalogRegistry resolves language tags to exactly one catalog
type CatalogRegistry struct {
	catalogs        map[string]*LabelCatalog
	languages       []string
	defaultLanguage string
}

// NewCatalogRegistry compiles every definition. The default language must be one of them.
func NewCatalogRegistry(defaultLanguage string, defs ...CatalogDefinition) (*CatalogRegistry, error) {
	if len(defs) == 0 {
		defs = DefaultCatalogs()
	}

	r := &CatalogRegistry{catalogs: make(map[string]*LabelCatalog)}
	for _, def := range defs {
		catalog, err := NewLabelCatalog(def)
		if err != nil {
			return nil, err
		}
		keys := append([]string{catalog.language}, catalog.aliases...)
		for _, key := range keys {
			key = strings.ToLower(key)
			if existing, ok := r.catalogs[key]; ok && existing != catalog {
				return nil, fmt.Errorf("language tag %q registered by both %s and %s", key, existing.language, catalog.language)
			}
			r.catalogs[key] = catalog
		}
		r.languages = append(r.languages, catalog.language)
	}

	if defaultLanguage == "" {
		defaultLanguage = r.languages[0]
	}
	def, ok := r.catalogs[normalizeLanguageTag(defaultLanguage)]
	if !ok {
		return nil, fmt.Errorf("%w: default language %q", domain.ErrUnsupportedLanguage, defaultLanguage)
	}
	r.defaultLanguage = def.language

	return r, nil
}

// Lookup returns the catalog for a tag, or ErrUnsupportedLanguage
func (r *CatalogRegistry) Lookup(language string) (*LabelCatalog, error) {
	catalog, ok := r.catalogs[normalizeLanguageTag(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, language)
	}
	return catalog, nil
}

// Resolve returns the catalog for a tag, falling back to the default language
func (r *CatalogRegistry) Resolve(language string) *LabelCatalog {
	if catalog, err := r.Lookup(language); err == nil {
		return catalog
	}
	return r.catalogs[r.defaultLanguage]
}

// Languages lists the primary language tags in registration order
func (r *CatalogRegistry) Languages() []string {
	return append([]string(nil), r.languages...)
}

// DefaultLanguage returns the fallback language tag
func (r *CatalogRegistry) DefaultLanguage() string {
	return r.defaultLanguage
}

// normalizeLanguageTag lowercases a tag and strips enum-style prefixes such as "LangType.CH"
func normalizeLanguageTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if idx := strings.LastIndex(tag, "."); idx >= 0 {
		tag = tag[idx+1:]
	}
	return tag
}
