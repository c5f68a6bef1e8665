package mail

import "fmt"

const welcomeTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#f5f5f5;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:20px">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;background:#fff;border-radius:.375rem;box-shadow:0 4px 6px -1px rgb(0 0 0 / .1);margin:40px auto;padding:24px;width:550px">
    <tbody>
      <tr><td>
        <h1 style="color:#0ea5e9;font-size:22px;text-align:center;margin:24px 0">Welcome to SafeSpace, {{.Username}}!</h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Your account is ready. SafeSpace keeps discussions healthy with automatic content review, so you can focus on the conversation.</p>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">A few things to know:</p>
        <ul style="font-size:14px;line-height:24px;color:#333">
          <li>Comments are reviewed the moment you post them.</li>
          <li>Flagged content may be held for a human moderator.</li>
          <li>Repeated abusive content can lead to account suspension.</li>
        </ul>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="text-align:center;margin:32px 0">
          <tbody><tr><td>
            <a href="{{.LoginURL}}" target="_blank" style="line-height:100%;text-decoration:none;display:inline-block;padding:12px 20px;background-color:#0ea5e9;border-radius:.25rem;color:#fff;font-size:12px;font-weight:600">Sign in</a>
          </td></tr></tbody>
        </table>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:#9ca3af">This is an automated message, please do not reply.<br />&copy;{{year}} SafeSpace</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

const warningTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#f5f5f5;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:20px">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;background:#fff;border-radius:.375rem;box-shadow:0 4px 6px -1px rgb(0 0 0 / .1);margin:40px auto;padding:24px;width:550px;border:1px solid #f59e0b">
    <tbody>
      <tr><td>
        <h1 style="color:#f59e0b;font-size:20px;text-align:center;margin:24px 0">Content Warning</h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Hi {{.Username}},</p>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">A high share of your recent comments has been flagged by our moderation system. Your current flag rate is <strong>{{printf "%.0f%%" .AbuseRatePct}}</strong>; accounts above <strong>{{printf "%.0f%%" .SuspendRatePct}}</strong> are suspended automatically.</p>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Please review our community guidelines and keep your comments respectful. This warning exists so you can correct course before any restriction applies.</p>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:#9ca3af">This is an automated message, please do not reply.<br />&copy;{{year}} SafeSpace</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

const suspensionTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#f5f5f5;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:20px">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;background:#fff;border-radius:.375rem;box-shadow:0 4px 6px -1px rgb(0 0 0 / .1);margin:40px auto;padding:24px;width:550px;border:1px solid #ef4444">
    <tbody>
      <tr><td>
        <h1 style="color:#ef4444;font-size:20px;text-align:center;margin:24px 0">Account Suspended</h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Hi {{.Username}},</p>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Your SafeSpace account has been suspended.</p>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:12px;line-height:24px;margin:16px 0;color:#333">Reason: {{.Reason}}</p></td></tr></tbody>
        </table>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">If you believe this is a mistake, you can appeal by writing to <a href="mailto:{{.AppealEmail}}" style="color:#0ea5e9">{{.AppealEmail}}</a>.</p>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:#9ca3af">This is an automated message, please do not reply.<br />&copy;{{year}} SafeSpace</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

const weeklyReportTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#f5f5f5;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,sans-serif;padding:20px">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;background:#fff;border-radius:.375rem;box-shadow:0 4px 6px -1px rgb(0 0 0 / .1);margin:40px auto;padding:24px;width:550px">
    <tbody>
      <tr><td>
        <h1 style="color:#0ea5e9;font-size:20px;text-align:center;margin:24px 0">Weekly Moderation Report</h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#333">Hi {{.ModeratorName}}, here is the summary for {{.WeekStart}} to {{.WeekEnd}}:</p>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:#f3f4f6;border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:12px;line-height:24px;margin:16px 0;color:#333">
            Comments reviewed: {{.TotalComments}}<br />
            Flagged as abusive: {{.AbusiveComments}}<br />
            Flagged as spam: {{.SpamComments}}<br />
            Awaiting human review: {{.PendingReview}}
          </p></td></tr></tbody>
        </table>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:#9ca3af">This is an automated message, please do not reply.<br />&copy;{{year}} SafeSpace</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

// WelcomeData is the data for new-account welcome emails.
type WelcomeData struct {
	Username string
	LoginURL string
}

// WarningData is the data for abuse-rate warning emails.
type WarningData struct {
	Username       string
	AbuseRatePct   float64
	SuspendRatePct float64
}

// SuspensionData is the data for account suspension emails.
type SuspensionData struct {
	Username    string
	Reason      string
	AppealEmail string
}

// WeeklyReportData is the data for moderator weekly report emails.
type WeeklyReportData struct {
	ModeratorName   string
	WeekStart       string
	WeekEnd         string
	TotalComments   int64
	AbusiveComments int64
	SpamComments    int64
	PendingReview   int64
}

// SendWelcome sends the welcome email to a newly registered user.
func (s *Sender) SendWelcome(to string, data WelcomeData) error {
	html, err := renderTemplate(welcomeTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome to SafeSpace, %s!", data.Username),
		HTML:    html,
	})
}

// SendWarning notifies a user whose flagged-comment rate is approaching the
// suspension threshold.
func (s *Sender) SendWarning(to string, data WarningData) error {
	html, err := renderTemplate(warningTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: "SafeSpace - Content Warning: Please Review Your Comments",
		HTML:    html,
	})
}

// SendSuspension notifies a user their account was suspended.
func (s *Sender) SendSuspension(to string, data SuspensionData) error {
	if data.AppealEmail == "" {
		data.AppealEmail = s.cfg.From
	}
	html, err := renderTemplate(suspensionTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: "SafeSpace - Account Suspended",
		HTML:    html,
	})
}

// SendWeeklyReport sends the weekly moderation summary to a moderator.
func (s *Sender) SendWeeklyReport(to string, data WeeklyReportData) error {
	html, err := renderTemplate(weeklyReportTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{to},
		Subject: fmt.Sprintf("SafeSpace - Weekly Moderation Report (%s - %s)", data.WeekStart, data.WeekEnd),
		HTML:    html,
	})
}
