package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"time"
)

const SchoolName = "E.E Profº Anibal do Prado e Silva"

func SendEmail(to, subject, body string) error {
	from := os.Getenv("SMTP_EMAIL")
	pass := os.Getenv("SMTP_PASSWORD")

	// Headers: UTF-8 e HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		"smtp.gmail.com:587",
		smtp.PlainAuth("", from, pass, "smtp.gmail.com"),
		from,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %v", err)
	}
	return nil
}

func emailShell(inner string) string {
	return `
	<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 20px auto; border: 1px solid #ddd; border-radius: 8px; overflow: hidden;">
	  <div style="background-color: #4455a3; color: white; padding: 20px; text-align: center;">
	    <h1 style="margin: 0; font-size: 24px;">` + SchoolName + `</h1>
	  </div>
	  <div style="padding: 30px;">` + inner + `</div>
	  <div style="background-color: #f3f4f6; color: #777; padding: 15px; text-align: center; font-size: 12px;">
	    <p>&copy; ` + fmt.Sprint(time.Now().Year()) + ` ` + SchoolName + `. Todos os direitos reservados.</p>
	  </div>
	</div>`
}

// VerificationEmailBody monta o e-mail com o código de 6 dígitos.
func VerificationEmailBody(code string) string {
	return emailShell(`
	    <p>Olá,</p>
	    <p>Obrigado por se registrar no portal da <strong>` + SchoolName + `</strong>.</p>
	    <p>Use o código abaixo para verificar seu endereço de e-mail:</p>
	    <p style="text-align: center; margin: 30px 0; font-size: 36px; font-weight: bold; letter-spacing: 5px; color: #4455a3;">` + code + `</p>
	    <p>Este código é válido por 90 segundos.</p>
	    <p>Se você não se registrou, por favor, ignore este e-mail.</p>
	    <p>Atenciosamente,<br>A Equipe ` + SchoolName + `</p>`)
}

// ResetEmailBody monta o e-mail com o link de redefinição de senha.
func ResetEmailBody(resetURL string) string {
	return emailShell(`
	    <p>Olá,</p>
	    <p>Você está recebendo este e-mail porque foi solicitada a redefinição da senha da sua conta no <strong>` + SchoolName + `</strong>.</p>
	    <p>Para redefinir sua senha, por favor, clique no botão abaixo:</p>
	    <p style="text-align: center; margin: 30px 0;">
	      <a href="` + resetURL + `" style="background-color: #ec9c30; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px; font-size: 16px; font-weight: bold;">Redefinir Senha</a>
	    </p>
	    <p>Este link de redefinição de senha é válido por 1 hora.</p>
	    <p>Se você não solicitou esta redefinição de senha, por favor, ignore este e-mail.</p>
	    <p>Atenciosamente,<br>A Equipe ` + SchoolName + `</p>`)
}

// ResetURL monta o link de redefinição apontando para o frontend.
func ResetURL(token string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + "/reset-password/" + token
}
