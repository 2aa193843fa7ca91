package workflow

import (
	"time"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
)

const DefaultStatusMessage = "وضعیت درخواست تغییر کرد."

// StatusMessage returns the canned audit and notification text for the status a request enters.
func StatusMessage(status domain.Status) string {
	switch status {
	case domain.StatusSubmitted:
		return "درخواست با موفقیت ثبت شد."
	case domain.StatusDesignerReview:
		return "درخواست برای بررسی به طراح ارسال شد."
	case domain.StatusPendingCorrection:
		return "درخواست برای اصلاح به درخواست‌دهنده بازگردانده شد."
	case domain.StatusDesignInProgress:
		return "طراحی درخواست آغاز شد."
	case domain.StatusPendingApproval:
		return "طرح برای تأیید ارسال شد."
	case domain.StatusPendingRedesign:
		return "طرح رد شد و درخواست برای طراحی مجدد بازگردانده شد."
	case domain.StatusCompleted:
		return "فرآیند درخواست با موفقیت به اتمام رسید و مختومه شد."
	default:
		return DefaultStatusMessage
	}
}

// WithNote appends a caller-supplied note to a status message.
func WithNote(message string, note *string) string {
	if note == nil || *note == "" {
		return message
	}
	return message + " توضیحات: " + *note
}

func NewRequestMessage(title string) string {
	return "درخواست جدید «" + title + "» برای بررسی ثبت شد."
}

// DeadlineWarningMessage dates are rendered as YYYY-MM-DD.
func DeadlineWarningMessage(title string, due time.Time) string {
	return "مهلت تحویل درخواست «" + title + "» نزدیک است (" + due.Format("2006-01-02") + ")."
}
