// Package notify delivers owner notifications for new orders and contact messages.
package notify

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"koon7r-storefront/models"
	"koon7r-storefront/utils"
)

// Photo is an image attachment sent after the text of a notification
type Photo struct {
	Filename  string
	MediaType string
	Caption   string
	Data      []byte
}

// Notification is one owner-facing event
type Notification struct {
	Title  string
	Body   string
	Photos []Photo
}

// Text joins title and body the way the owner reads them in chat
func (n Notification) Text() string {
	if n.Body == "" {
		return n.Title
	}
	return n.Title + "\n\n" + n.Body
}

// Notifier is a best-effort delivery channel
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, n Notification) error
}

// OwnerLogNotifier writes notifications to the service log
type OwnerLogNotifier struct{}

// Ensure OwnerLogNotifier implements Notifier
var _ Notifier = OwnerLogNotifier{}

// Channel names the channel in logs and metrics
func (OwnerLogNotifier) Channel() string { return "owner-log" }

// Notify logs the notification text
func (OwnerLogNotifier) Notify(_ context.Context, n Notification) error {
	log.WithFields(log.Fields{
		"title":  n.Title,
		"photos": len(n.Photos),
	}).Infof("🔔 OwnerNotification: %s", n.Text())
	return nil
}

// OrderNotification builds the itemized summary of a new order. The inline design images of
// custom lines become photos; catalog lines never attach one.
func OrderNotification(order *models.Order) Notification {
	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, fmt.Sprintf("%s (%s) x%d - %s",
			item.Name, orNA(item.Size), item.Quantity, utils.FormatAmount(item.Price)))
	}

	body := fmt.Sprintf("Customer: %s\nPhone: %s\nEmail: %s\nAddress: %s\n\nItems:\n%s\n\nTotal: %s\n\nNotes: %s",
		order.CustomerName,
		order.CustomerPhone,
		orNA(order.CustomerEmail),
		order.CustomerAddress,
		strings.Join(items, "\n"),
		utils.FormatAmount(order.TotalAmount),
		orDefault(order.Notes, "None"),
	)

	n := Notification{
		Title: fmt.Sprintf("New Order: %s", order.ID),
		Body:  body,
	}

	for _, item := range order.Items {
		if !item.IsCustom() {
			continue
		}
		caption := fmt.Sprintf("%s - Size: %s", item.Name, orNA(item.Size))
		if item.HasInlineImage() {
			if photo, ok := inlinePhoto(item.Image, photoFilename(item.Name, ""), caption); ok {
				n.Photos = append(n.Photos, photo)
			}
		}
		if strings.HasPrefix(item.Custom.BackImage, "data:image") {
			if photo, ok := inlinePhoto(item.Custom.BackImage, photoFilename(item.Name, "back"), caption+" (back)"); ok {
				n.Photos = append(n.Photos, photo)
			}
		}
	}
	return n
}

// MessageNotification builds the notification for a contact form submission
func MessageNotification(msg *models.ContactMessage) Notification {
	return Notification{
		Title: fmt.Sprintf("New Message from %s", msg.Name),
		Body:  fmt.Sprintf("Email: %s\n\nMessage:\n%s", msg.Email, msg.Message),
	}
}

func inlinePhoto(uri, filename, caption string) (Photo, bool) {
	mediaType, data, err := utils.ParseDataURI(uri)
	if err != nil {
		log.Printf("⚠️ OrderNotification: Skipping undecodable image for %q: %v", caption, err)
		return Photo{}, false
	}
	return Photo{Filename: filename, MediaType: mediaType, Caption: caption, Data: data}, true
}

// photoFilename replaces whitespace runs with underscores: "Custom TSHIRT" -> "Custom_TSHIRT.png"
func photoFilename(name, suffix string) string {
	base := strings.Join(strings.Fields(name), "_")
	if base == "" {
		base = "design"
	}
	if suffix != "" {
		base += "_" + suffix
	}
	return base + ".png"
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
