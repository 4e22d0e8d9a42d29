package service

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"

	"iot-dashboard/internal/domain"
	"iot-dashboard/internal/i18n"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ValidationError field -> failed rule, keyed by JSON path
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid settings: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidArgument }

// PasswordChange optional part of the settings form. There are no stored credentials, so it
// is validated and then discarded.
type PasswordChange struct {
	Current string `json:"currentPassword" validate:"required"`
	New     string `json:"newPassword" validate:"required,min=8"`
	Confirm string `json:"confirmPassword" validate:"required,eqfield=New"`
}

type SaveSettingsRequest struct {
	domain.Settings
	Password *PasswordChange `json:"password,omitempty"`
}

// SettingsOptions values the form may offer
type SettingsOptions struct {
	Themes           []string `json:"themes"`
	Languages        []string `json:"languages"`
	DateFormats      []string `json:"dateFormats"`
	TemperatureUnits []string `json:"temperatureUnits"`
}

type SettingsResponse struct {
	Settings domain.Settings `json:"settings"`
	Options  SettingsOptions `json:"options"`
}

// SettingsService settings page. Saved values live in the session only.
type SettingsService interface {
	Get(sess *Session) *SettingsResponse
	Save(ctx context.Context, sess *Session, req SaveSettingsRequest) (*SettingsResponse, error)
}

type settingsService struct {
	validate *validator.Validate
	catalog  *i18n.Catalog
	logger   *zap.Logger
}

func NewSettingsService(catalog *i18n.Catalog, logger *zap.Logger) SettingsService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &settingsService{validate: v, catalog: catalog, logger: logger}
}

func (s *settingsService) options() SettingsOptions {
	return SettingsOptions{
		Themes:           []string{"light", "dark", "auto"},
		Languages:        s.catalog.Locales(),
		DateFormats:      []string{"MM/DD/YYYY", "DD/MM/YYYY", "YYYY-MM-DD"},
		TemperatureUnits: []string{"celsius", "fahrenheit"},
	}
}

func (s *settingsService) Get(sess *Session) *SettingsResponse {
	return &SettingsResponse{Settings: sess.Settings(), Options: s.options()}
}

func (s *settingsService) Save(_ context.Context, sess *Session, req SaveSettingsRequest) (*SettingsResponse, error) {
	fields := map[string]string{}
	collect(fields, "", s.validate.Struct(req.Settings))
	if req.Password != nil {
		collect(fields, "password.", s.validate.Struct(req.Password))
	}
	if lang := req.Preferences.Language; lang != "" && !s.catalog.Supports(lang) {
		fields["preferences.language"] = "oneof"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	sess.SaveSettings(req.Settings)
	s.logger.Info("Settings saved",
		zap.String("session_id", sess.ID),
		zap.String("language", req.Preferences.Language),
		zap.Bool("password_validated", req.Password != nil),
	)
	return &SettingsResponse{Settings: sess.Settings(), Options: s.options()}, nil
}

func collect(fields map[string]string, prefix string, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		fields[prefix+jsonPath(fe.Namespace())] = fe.Tag()
	}
}

// jsonPath drops the root struct name: "Settings.preferences.theme" -> "preferences.theme"
func jsonPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
