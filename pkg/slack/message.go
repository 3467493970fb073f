package slack

import (
	"fmt"

	"github.com/klokku/harvest-reminder/pkg/report"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const deficitColor = "#c93742"

type Message struct {
	Username    string       `json:"username"`
	IconUrl     string       `json:"icon_url"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Fallback string  `json:"fallback"`
	Color    string  `json:"color"`
	Title    string  `json:"title"`
	Fields   []Field `json:"fields"`
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type Bot struct {
	Name string
	Icon string
}

// BuildMessage renders the report: an all-clear text when nobody is short,
// otherwise one attachment per deficit in report order.
func BuildMessage(bot Bot, r report.Report) Message {
	schedule := string(r.Period.Schedule)
	message := Message{
		Username:    bot.Name,
		IconUrl:     bot.Icon,
		Attachments: make([]Attachment, 0, len(r.Deficits)),
	}

	if len(r.Deficits) == 0 {
		message.Text = fmt.Sprintf(":tada: *All hours entered* for the %s of %s.\n_I love you!_ :kissing_heart:", schedule, r.Period.Display)
		return message
	}

	message.Text = fmt.Sprintf("*The following users have missing hours*.\n%s of %s.", titleCase(schedule), r.Period.Display)
	for _, d := range r.Deficits {
		message.Attachments = append(message.Attachments, Attachment{
			Fallback: d.Description(schedule, r.Period.Display),
			Color:    deficitColor,
			Title:    d.Title(),
			Fields: []Field{{
				Name:  fmt.Sprintf(":%s:", d.DisplayKey()),
				Value: d.MissingText(),
				Short: true,
			}},
		})
	}
	return message
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
