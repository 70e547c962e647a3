package domain

// SourceKind identifies which side of a message a candidate bill came from.
type SourceKind string

const (
	SourceEmail    SourceKind = "email"
	SourcePDF      SourceKind = "pdf"
	SourceCombined SourceKind = "combined"
)

// ExtractionMethod records how a field or candidate was extracted.
type ExtractionMethod string

const (
	MethodExactPattern    ExtractionMethod = "exact_pattern"
	MethodCompanySpecific ExtractionMethod = "company_specific"
	MethodStemFallback    ExtractionMethod = "stem_fallback"
	MethodLabelFallback   ExtractionMethod = "label_fallback"
)

// Language is the closed set of languages the detector can return.
type Language string

const (
	LangEnglish   Language = "en"
	LangHungarian Language = "hu"
	LangGerman    Language = "de"
)

// DefaultLanguage is returned when no language crosses the detection threshold.
const DefaultLanguage = LangEnglish

// SupportedLanguages lists every language with a pattern table.
var SupportedLanguages = []Language{LangEnglish, LangHungarian, LangGerman}

// DefaultCurrency maps a detected language to the currency assumed when the
// text carries no currency marker at all.
var DefaultCurrency = map[Language]string{
	LangEnglish:   "USD",
	LangHungarian: "HUF",
	LangGerman:    "EUR",
}

// FieldName identifies a bill field targeted by extraction rules.
type FieldName string

const (
	FieldAmount        FieldName = "amount"
	FieldDueDate       FieldName = "due_date"
	FieldBillDate      FieldName = "bill_date"
	FieldInvoiceNumber FieldName = "invoice_number"
	FieldAccountNumber FieldName = "account_number"
	FieldVendor        FieldName = "vendor"
	FieldCategory      FieldName = "category"
)
