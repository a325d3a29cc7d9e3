package modelruntime

// I18nObject is a display string with per-locale variants.
type I18nObject struct {
	EnUS   string `json:"en_US"`
	ZhHans string `json:"zh_Hans,omitempty"`
}

// NewI18nObject returns a label whose zh_Hans falls back to en_US.
func NewI18nObject(enUS string) I18nObject {
	return I18nObject{EnUS: enUS, ZhHans: enUS}
}

// FetchFrom records where a model descriptor came from.
type FetchFrom string

const (
	FetchFromPredefinedModel   FetchFrom = "predefined-model"
	FetchFromCustomizableModel FetchFrom = "customizable-model"
)

// ModelType is the category of a model.
type ModelType string

const ModelTypeSpeech2Text ModelType = "speech2text"

// ModelPropertyKey names an entry of AIModelEntity.ModelProperties.
type ModelPropertyKey string

// ParameterRule describes one tunable invocation parameter.
type ParameterRule struct {
	Name     string     `json:"name"`
	Label    I18nObject `json:"label"`
	Type     string     `json:"type"`
	Required bool       `json:"required"`
	Default  any        `json:"default,omitempty"`
}

// AIModelEntity describes a model to the host: its identity, display
// label, category and the knobs it exposes.
type AIModelEntity struct {
	Model           string                   `json:"model"`
	Label           I18nObject               `json:"label"`
	ModelType       ModelType                `json:"model_type"`
	FetchFrom       FetchFrom                `json:"fetch_from"`
	ModelProperties map[ModelPropertyKey]any `json:"model_properties"`
	ParameterRules  []ParameterRule          `json:"parameter_rules"`
}
