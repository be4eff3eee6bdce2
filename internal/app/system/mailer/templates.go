// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// OutreachEmailData holds data for lead outreach email templates.
type OutreachEmailData struct {
	SiteName string
	LeadName string
	Message  string
	FromName string
}

// BuildOutreachEmail creates an outreach email with both HTML and text bodies.
func BuildOutreachEmail(data OutreachEmailData) Email {
	return Email{
		To:       "", // Set by caller
		ToName:   data.LeadName,
		Subject:  fmt.Sprintf("A message from %s", data.FromName),
		TextBody: buildOutreachText(data),
		HTMLBody: buildOutreachHTML(data),
	}
}

func buildOutreachText(data OutreachEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", data.LeadName))
	buf.WriteString(data.Message + "\n\n")
	buf.WriteString(fmt.Sprintf("— %s\n", data.FromName))
	if data.SiteName != "" {
		buf.WriteString(fmt.Sprintf("Sent via %s\n", data.SiteName))
	}
	return buf.String()
}

func buildOutreachHTML(data OutreachEmailData) string {
	tmpl := template.Must(template.New("outreach").Parse(outreachHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const outreachHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Message</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151; line-height: 1.5;">
                Hi {{.LeadName}},
              </p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5; white-space: pre-line;">{{.Message}}</p>
              <p style="margin: 0; font-size: 16px; color: #374151;">
                &mdash; {{.FromName}}
              </p>
            </td>
          </tr>
          {{if .SiteName}}
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                Sent via {{.SiteName}}
              </p>
            </td>
          </tr>
          {{end}}
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
