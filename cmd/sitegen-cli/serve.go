package main

import (
	"flag"
	"fmt"
	"net/http"
	"net/smtp"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/goliatone/go-sitegen/pkg/site"
)

func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := flags.String("config", "site.yaml", "site configuration file")
	port := flags.String("port", "", "listen port (defaults to $PORT or 8080)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := site.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	router := gin.Default()
	router.Static("/assets", "./assets")
	router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.OutputDir))))

	router.POST("/contact", contactHandler(cfg))

	listen := *port
	if listen == "" {
		listen = os.Getenv("PORT")
	}
	if listen == "" {
		listen = "8080"
	}
	return router.Run(":" + listen)
}

func contactHandler(cfg site.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.PostForm(cfg.Contact.TokenField)
		if token == "" {
			c.String(http.StatusBadRequest, "verification token missing")
			return
		}

		name := c.PostForm("name")
		email := c.PostForm("email")
		message := c.PostForm("message")
		if email == "" || message == "" {
			c.String(http.StatusBadRequest, "email and message are required")
			return
		}

		if err := sendContactEmail(cfg.Contact.Recipient, name, email, message); err != nil {
			c.String(http.StatusInternalServerError, "could not deliver your message, try again later")
			return
		}

		if redirect := c.PostForm("redirect"); redirect != "" {
			c.Redirect(http.StatusSeeOther, redirect)
			return
		}
		c.String(http.StatusOK, "message sent")
	}
}

func sendContactEmail(recipient, name, email, message string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" {
		smtpHost = "smtp.gmail.com"
	}
	if smtpPort == "" {
		smtpPort = "587"
	}
	if recipient == "" {
		recipient = os.Getenv("TO_EMAIL")
	}

	if smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("smtp credentials not configured")
	}
	if recipient == "" {
		return fmt.Errorf("contact recipient not configured")
	}

	subject := fmt.Sprintf("Portfolio contact: %s", name)
	body := fmt.Sprintf("New contact form submission:\n\nName: %s\nEmail: %s\nMessage:\n%s\n", name, email, message)

	msg := []byte("To: " + recipient + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + smtpUser + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	return smtp.SendMail(smtpHost+":"+smtpPort, auth, smtpUser, []string{recipient}, msg)
}
