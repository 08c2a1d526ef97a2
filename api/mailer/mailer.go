package mailer

import (
	"fmt"
	"os"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func newProduct() hermes.Hermes {
	return hermes.Hermes{
		Product: hermes.Product{
			Name: "Inkwell",
			Link: appURL(),
		},
	}
}

func appURL() string {
	if url := os.Getenv("APP_URL"); url != "" {
		return url
	}
	return "http://localhost:8888"
}

// SendFollowNotification emails an author that someone started following
// them. Delivery is best effort: with no SENDGRID_API_KEY configured the
// notification is silently skipped.
func SendFollowNotification(authorName, authorEmail, followerName string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" || authorEmail == "" {
		return nil
	}

	email := hermes.Email{
		Body: hermes.Body{
			Name: authorName,
			Intros: []string{
				fmt.Sprintf("%s is now following you on Inkwell.", followerName),
			},
			Actions: []hermes.Action{
				{
					Instructions: "See their profile:",
					Button: hermes.Button{
						Text: "View profile",
						Link: fmt.Sprintf("%s/profile/%s/", appURL(), followerName),
					},
				},
			},
			Outros: []string{
				"Keep writing. Your followers are waiting for your next post.",
			},
		},
	}

	product := newProduct()

	htmlBody, err := product.GenerateHTML(email)
	if err != nil {
		return err
	}
	textBody, err := product.GeneratePlainText(email)
	if err != nil {
		return err
	}

	from := mail.NewEmail("Inkwell", fromAddress())
	to := mail.NewEmail(authorName, authorEmail)
	message := mail.NewSingleEmail(from, "You have a new follower", to, textBody, htmlBody)

	client := sendgrid.NewSendClient(apiKey)
	_, err = client.Send(message)
	return err
}

func fromAddress() string {
	if addr := os.Getenv("MAIL_FROM"); addr != "" {
		return addr
	}
	return "no-reply@inkwell.local"
}
