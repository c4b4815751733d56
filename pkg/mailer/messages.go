package mailer

import (
	"fmt"
	"net/url"
)

// VerificationURL appends token and email as query parameters to a front-end
// page URL. The recipient follows it to finish the flow.
func VerificationURL(baseURL, token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return baseURL + "?" + q.Encode()
}

// NewRegisterEmailJob builds the provisional-registration message carrying
// the registration completion URL.
func NewRegisterEmailJob(email, token, baseURL string) EmailJob {
	link := VerificationURL(baseURL, token, email)
	return EmailJob{
		To:      email,
		Subject: "【メンバー決済管理】本登録のURLが発行されました",
		Text: fmt.Sprintf(
			"以下のURLから本登録を完了してください。\n\n%s\n\nURLの有効期限は1時間です。",
			link,
		),
	}
}

// NewUpdateEmailJob builds the email-change message sent to the new address.
func NewUpdateEmailJob(newEmail, token, nickname, baseURL string) EmailJob {
	link := VerificationURL(baseURL, token, newEmail)
	return EmailJob{
		To:      newEmail,
		Subject: "【メンバー決済管理】メールアドレス変更のURLが発行されました",
		Text: fmt.Sprintf(
			"%s様\n\n以下のURLからメールアドレスの変更を完了してください。\n\n%s\n\nURLの有効期限は1時間です。",
			nickname, link,
		),
	}
}
