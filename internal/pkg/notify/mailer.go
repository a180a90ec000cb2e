package notify

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"log"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"sdm-yayasan-backend/config"
)

var (
	//go:embed templates/notifikasi.html
	emailTemplates embed.FS

	notifikasiTemplate = template.Must(template.New("notifikasi.html").ParseFS(emailTemplates, "templates/notifikasi.html"))
)

type Attachment struct {
	Nama string
	Data []byte
}

type Mailer interface {
	Send(to, subject string, data EmailData, attachments ...Attachment) error
}

type EmailData struct {
	Judul  string
	Nama   string
	Baris  []string
	Footer string
}

type GomailMailer struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.EmailConfig) Mailer {
	if !cfg.Enabled() {
		return LogMailer{}
	}
	return &GomailMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func RenderEmail(data EmailData) (string, error) {
	var body bytes.Buffer
	if err := notifikasiTemplate.Execute(&body, data); err != nil {
		return "", errors.Wrap(err, "render template email")
	}
	return body.String(), nil
}

func (m *GomailMailer) Send(to, subject string, data EmailData, attachments ...Attachment) error {
	from := m.cfg.FromAddress
	if from == "" {
		from = m.cfg.Username
	}
	if from == "" {
		return errors.New("smtp from address is not configured")
	}

	html, err := RenderEmail(data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	for _, a := range attachments {
		content := a.Data
		msg.Attach(a.Nama, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	return errors.Wrapf(m.dialer.DialAndSend(msg), "kirim email ke %s", to)
}

// LogMailer hanya menulis log, dipakai bila SMTP belum dikonfigurasi.
type LogMailer struct{}

func (LogMailer) Send(to, subject string, _ EmailData, attachments ...Attachment) error {
	log.Printf("[MAIL] SMTP tidak aktif, lewati email %q ke %s (%d lampiran)", subject, to, len(attachments))
	return nil
}
