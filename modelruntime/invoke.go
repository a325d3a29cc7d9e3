package modelruntime

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/localai-stt/errors"
)

// Invoke calls m.Invoke and folds any error through m's error mapping
// with TransformInvokeError.
func Invoke(ctx context.Context, m Speech2TextModel, model string, creds Credentials, file io.Reader, user string) (string, error) {
	text, err := m.Invoke(ctx, model, creds, file, user)
	if err != nil {
		return "", TransformInvokeError(m.Name(), m.InvokeErrorMapping(), err)
	}
	return text, nil
}

// TransformInvokeError rewrites err for the host. An AppError whose code
// resolves through mapping is re-issued as that kind with the message
// prefixed by "[providerName] "; everything else becomes INVOKE_ERROR.
// The original error is kept as the cause in both cases.
func TransformInvokeError(providerName string, mapping ErrorMapping, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if kind, ok := mapping.Resolve(appErr.Code); ok {
			out := errors.New(kind, fmt.Sprintf("[%s] %s", providerName, appErr.Message), appErr.HTTPStatus)
			out.Details = appErr.Details
			return out.WithCause(err)
		}
	}
	return errors.InvokeFailed(fmt.Sprintf("[%s] Error: %s", providerName, err.Error()), err)
}
