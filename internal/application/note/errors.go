package note

import (
	"rbt-notepad/internal/domain/service"
	apperrors "rbt-notepad/pkg/errors"
)

// 面向用户的错误，消息原样展示
var (
	ErrInvalidCredential  = apperrors.New(apperrors.CodeInvalidCredential, "Invalid API Key. Please check your configuration.")
	ErrServiceUnavailable = apperrors.New(apperrors.CodeLLMUnavailable, "Failed to generate note. The AI service may be experiencing issues or the request may have been blocked.")
)

// ClassifyLLMError 将模型调用错误翻译为面向用户的两类错误之一，保留原始错误
func ClassifyLLMError(err error) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if service.IsCredentialError(err) {
		return ErrInvalidCredential.WithError(err)
	}
	return ErrServiceUnavailable.WithError(err)
}
