// Package report renders session data as plain text for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/doxsim/internal/model"
)

// RenderMetadata prints what the metadata collaborator resolved.
func RenderMetadata(w io.Writer, md model.Metadata) error {
	loc := md.Location
	rows := [][]string{
		{"IP Address", md.IPAddress},
		{"City", loc.City},
		{"Region", loc.Region},
		{"Country", loc.Country},
		{"Coordinates", fmt.Sprintf("%.6f, %.6f", loc.Latitude, loc.Longitude)},
		{"Browser", md.BrowserInfo.Browser},
		{"OS", md.BrowserInfo.OS},
		{"Device", md.BrowserInfo.DeviceType},
		{"User Agent", md.BrowserInfo.UserAgent},
		{"Resolved At", time.UnixMilli(md.Timestamp).UTC().Format(time.RFC3339)},
	}
	return renderSection(w, "Session Metadata", nil, rows, nil)
}

// RenderProfile prints a generated profile, one section per list.
func RenderProfile(w io.Writer, p model.Profile) error {
	basic := [][]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.PhoneNumber},
		{"Date of Birth", p.DateOfBirth},
	}
	if err := renderSection(w, "Basic Information", nil, basic, nil); err != nil {
		return err
	}

	social := make([][]string, 0, len(p.SocialAccounts))
	for _, acc := range p.SocialAccounts {
		social = append(social, []string{acc.Platform, acc.Username})
	}
	if err := renderSection(w, "Social Media Accounts", []string{"Platform", "Username"}, social, nil); err != nil {
		return err
	}
	if err := renderList(w, "Relatives Identified", p.Relatives); err != nil {
		return err
	}
	if err := renderList(w, "Leaked Passwords", p.LeakedPasswords); err != nil {
		return err
	}
	return renderList(w, "Possible Addresses", p.PossibleAddresses)
}

// RenderBreaches prints breach events in the order given.
func RenderBreaches(w io.Writer, events []model.BreachEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No breach events.")
		return err
	}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{ev.Date, ev.Site})
	}
	return renderSection(w, "Data Breach History", []string{"Date", "Site"}, rows, nil)
}

func renderList(w io.Writer, title string, values []string) error {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{"-", v})
	}
	return renderSection(w, title, nil, rows, nil)
}

func renderSection(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", len(title))); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
