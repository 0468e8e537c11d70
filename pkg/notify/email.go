package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/nmoran/gamedrop/pkg/deals"
	"github.com/nmoran/gamedrop/pkg/game"
	"github.com/nmoran/gamedrop/pkg/relevance"
)

const claimURL = "https://store.epicgames.com/free-games"

// dateUnavailable is what the templates show when a promotion carries no
// usable end date.
const dateUnavailable = "date unavailable"

// Email delivers the summary as a multipart HTML+text message over SMTP.
type Email struct {
	host     string
	port     int
	from     string
	password string
	to       []string
}

// NewEmail creates the email notifier.
func NewEmail(host string, port int, from, password string, to []string) *Email {
	if host == "" {
		host = "smtp.gmail.com"
	}
	if port == 0 {
		port = 587
	}
	return &Email{host: host, port: port, from: from, password: password, to: to}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Send(ctx context.Context, n *Notification) error {
	if e.from == "" || e.password == "" || len(e.to) == 0 {
		return fmt.Errorf("email notifier misconfigured")
	}

	html, err := renderHTML(n)
	if err != nil {
		return fmt.Errorf("render html body: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.to...)
	m.SetHeader("Subject", subjectFor(n))
	m.SetBody("text/plain", renderText(n))
	m.AddAlternative("text/html", html)

	d := gomail.NewDialer(e.host, e.port, e.from, e.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// subjectFor picks the subject line based on what the notification carries.
func subjectFor(n *Notification) string {
	date := n.GeneratedAt.Format("02/01/2006")
	switch {
	case len(n.Games) > 0 && len(n.Deals) > 0:
		return "Epic free games + bundle deals - " + date
	case len(n.Games) > 0:
		return "New free games on Epic Games Store - " + date
	default:
		return "Best high-discount bundle deals - " + date
	}
}

// formatDate renders an end date for display. Empty dates become the
// literal unavailable string; unparsable ones pass through untouched.
func formatDate(s string) string {
	if s == "" {
		return dateUnavailable
	}

	layouts := []string{
		"2006-01-02T15:04:05.000Z",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

// gameView pairs a game with its relevance record for rendering.
type gameView struct {
	Index     int
	Game      game.FreeGame
	Relevance *relevance.Record
	Expires   string
}

func buildViews(n *Notification) []gameView {
	views := make([]gameView, len(n.Games))
	for i, g := range n.Games {
		views[i] = gameView{
			Index:   i + 1,
			Game:    g,
			Expires: formatDate(g.EndDate),
		}
		if i < len(n.Relevance) {
			views[i].Relevance = &n.Relevance[i]
		}
	}
	return views
}

func renderText(n *Notification) string {
	var b strings.Builder

	if len(n.Games) > 0 {
		b.WriteString("EPIC GAMES - FREE GAMES\n")
		b.WriteString(strings.Repeat("=", 50) + "\n\n")

		for _, v := range buildViews(n) {
			fmt.Fprintf(&b, "GAME #%d: %s\n", v.Index, v.Game.Title)
			b.WriteString(strings.Repeat("-", 30) + "\n")
			if v.Game.Description != "" {
				fmt.Fprintf(&b, "Description: %s\n", v.Game.Description)
			}
			fmt.Fprintf(&b, "Expires: %s\n", v.Expires)
			b.WriteString("Price: FREE\n")
			if r := v.Relevance; r != nil {
				fmt.Fprintf(&b, "Relevance: %s\n", r.Level)
				if r.Rating > 0 {
					fmt.Fprintf(&b, "Rating: %.1f/5.0\n", r.Rating)
				}
				if r.Popularity > 0 {
					fmt.Fprintf(&b, "Popularity: %d points\n", r.Popularity)
				}
				if len(r.Sources) > 0 {
					fmt.Fprintf(&b, "Sources: %s\n", strings.Join(r.Sources, ", "))
				}
			}
			fmt.Fprintf(&b, "Claim: %s\n\n", claimURL)
		}
	}

	if len(n.Deals) > 0 {
		fmt.Fprintf(&b, "%d BEST HIGH-DISCOUNT DEALS\n", len(n.Deals))
		b.WriteString(strings.Repeat("=", 50) + "\n\n")

		for i, d := range n.Deals {
			fmt.Fprintf(&b, "%d. %s\n", i+1, d.Title)
			fmt.Fprintf(&b, "   Price: ~%.2f %s per game\n", d.PricePerGame, d.Currency)
			fmt.Fprintf(&b, "   Discount: ~%.0f%%\n", d.EstimatedDiscount)
			fmt.Fprintf(&b, "   Bundle: %s\n", d.BundleTitle)
			fmt.Fprintf(&b, "   Expires: %s\n\n", formatDate(d.EndDate))
		}
	}

	fmt.Fprintf(&b, "Generated automatically on %s\n",
		n.GeneratedAt.Format("02/01/2006 at 15:04"))

	return b.String()
}

var htmlTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f5f5f5;margin:0;padding:20px;">
  <div style="max-width:800px;margin:0 auto;background:#fff;border-radius:10px;overflow:hidden;">
    {{if .Games}}
    <div style="background:#0078f2;color:#fff;padding:20px;">
      <h1 style="margin:0;">Free Games on Epic Games Store</h1>
    </div>
    {{range .Games}}
    <div style="padding:20px;border-bottom:1px solid #eee;">
      <h2 style="margin-top:0;">{{.Index}}. {{.Game.Title}}</h2>
      {{if .Game.ImageURL}}<img src="{{.Game.ImageURL}}" alt="{{.Game.Title}}" style="max-width:460px;width:100%;border-radius:6px;">{{end}}
      {{if .Game.Description}}<p>{{.Game.Description}}</p>{{end}}
      <p><strong>Expires:</strong> {{.Expires}} &middot; <strong>Price:</strong> FREE</p>
      {{with .Relevance}}
      <p>
        <strong>Relevance:</strong> {{.Level}}
        {{if gt .Rating 0.0}} &middot; <strong>Rating:</strong> {{printf "%.1f" .Rating}}/5.0{{end}}
        {{if gt .Popularity 0}} &middot; <strong>Popularity:</strong> {{.Popularity}}{{end}}
      </p>
      {{end}}
      <p><a href="{{$.ClaimURL}}" style="color:#0078f2;">Claim it now</a></p>
    </div>
    {{end}}
    {{end}}
    {{if .Deals}}
    <div style="background:#764ba2;color:#fff;padding:20px;">
      <h1 style="margin:0;">High-Discount Bundle Deals</h1>
    </div>
    {{range .Deals}}
    <div style="padding:20px;border-bottom:1px solid #eee;">
      <h3 style="margin-top:0;"><a href="{{.URL}}">{{.Title}}</a></h3>
      <p>
        <strong>~{{printf "%.2f" .PricePerGame}} {{.Currency}}</strong> per game
        &middot; <strong>~{{printf "%.0f" .EstimatedDiscount}}%</strong> off
        &middot; bundle: <a href="{{.BundleURL}}">{{.BundleTitle}}</a>
        &middot; expires {{.Expires}}
      </p>
    </div>
    {{end}}
    {{end}}
    <div style="padding:15px;color:#888;font-size:12px;">
      Generated automatically on {{.Generated}}
    </div>
  </div>
</body>
</html>`))

func renderHTML(n *Notification) (string, error) {
	type dealView struct {
		deals.Deal
		Expires string
	}

	dealViews := make([]dealView, len(n.Deals))
	for i, d := range n.Deals {
		dealViews[i] = dealView{Deal: d, Expires: formatDate(d.EndDate)}
	}

	data := struct {
		Games     []gameView
		Deals     []dealView
		ClaimURL  string
		Generated string
	}{
		Games:     buildViews(n),
		Deals:     dealViews,
		ClaimURL:  claimURL,
		Generated: n.GeneratedAt.Format("02/01/2006 at 15:04"),
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
