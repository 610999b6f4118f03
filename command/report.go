package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/napalu/slashopt/errs"
	"github.com/napalu/slashopt/i18n"
	"github.com/napalu/slashopt/l10n"
)

// Field is one line of a report, usually naming the offending option.
type Field struct {
	Name    string
	Message string
}

// Report is the user-facing rendering of an error.
type Report struct {
	Class  errs.Class
	Title  string
	Fields []Field
}

// Reporter renders errors in the invoking user's language and logs them.
// User errors are logged at Info, everything else at Error and shown to the
// user as a generic message.
type Reporter struct {
	Logger *slog.Logger
	Bundle *i18n.Bundle
}

// NewReporter returns a reporter; nil arguments select slog.Default and
// i18n.Default.
func NewReporter(logger *slog.Logger, bundle *i18n.Bundle) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if bundle == nil {
		bundle = i18n.Default()
	}

	return &Reporter{Logger: logger, Bundle: bundle}
}

// Invocation reports an error returned while resolving or running the
// command at path for a user with the given client locale.
func (r *Reporter) Invocation(ctx context.Context, path l10n.CommandPath, locale string, err error) Report {
	return r.report(ctx, locale, err, "command failed", slog.String("command", path.String()), func(p i18n.MessageProvider) string {
		return fmt.Sprintf(p.GetMessage(errs.ReportInvalidOptionsKey), path)
	})
}

// Component reports an error returned while dispatching a component
// interaction.
func (r *Reporter) Component(ctx context.Context, customID, locale string, err error) Report {
	return r.report(ctx, locale, err, "component failed", slog.String("custom_id", customID), func(p i18n.MessageProvider) string {
		return p.GetMessage(errs.ReportInvalidComponentKey)
	})
}

func (r *Reporter) report(ctx context.Context, locale string, err error, msg string, subject slog.Attr, title func(i18n.MessageProvider) string) Report {
	provider := i18n.NewLanguageProvider(r.Bundle, l10n.MatchString(locale).Tag())
	class := errs.ClassOf(err)

	attrs := []any{subject, slog.String("class", class.String()), slog.String("locale", locale), slog.Any("error", err)}
	if class != errs.ClassUser {
		r.Logger.ErrorContext(ctx, msg, attrs...)
		return Report{Class: class, Title: provider.GetMessage(errs.ReportInternalKey)}
	}
	r.Logger.InfoContext(ctx, msg, attrs...)

	report := Report{Class: class, Title: title(provider)}
	for _, part := range parts(err) {
		report.Fields = append(report.Fields, field(part, provider))
	}

	return report
}

func parts(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}

// field names the option of an errs.ErrInvalidOption and renders its cause;
// other errors are rendered whole.
func field(err error, provider i18n.MessageProvider) Field {
	var te i18n.TranslatableError
	if !errors.As(err, &te) {
		return Field{Message: err.Error()}
	}

	if te.Key() == errs.ErrInvalidOptionKey && len(te.Args()) > 0 {
		f := Field{Name: fmt.Sprint(te.Args()[0])}
		var cause i18n.TranslatableError
		switch {
		case errors.As(te.Unwrap(), &cause):
			f.Message = cause.Format(provider)
		case te.Unwrap() != nil:
			f.Message = te.Unwrap().Error()
		default:
			f.Message = te.Format(provider)
		}
		return f
	}

	return Field{Message: te.Format(provider)}
}
