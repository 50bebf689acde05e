package structure

import (
	"strings"
	"testing"
)

func TestClassify_DecimalNumbering(t *testing.T) {
	var c Classifier
	cases := []struct {
		line  string
		level int
		title string
	}{
		{"1 Introduction", 1, "Introduction"},
		{"1. Introduction", 1, "Introduction"},
		{"2.3 Payment Terms", 2, "Payment Terms"},
		{"4.1.2 Late Fees", 3, "Late Fees"},
		{"10.2.1.4 Escalation Path", 4, "Escalation Path"},
	}
	for _, tc := range cases {
		level, title, ok := c.Classify(tc.line)
		if !ok {
			t.Errorf("%q: expected heading, got none", tc.line)
			continue
		}
		if level != tc.level {
			t.Errorf("%q: expected level %d, got %d", tc.line, tc.level, level)
		}
		if title != tc.title {
			t.Errorf("%q: expected title %q, got %q", tc.line, tc.title, title)
		}
	}
}

func TestClassify_LetteredAndRoman(t *testing.T) {
	var c Classifier
	cases := []struct {
		line  string
		level int
	}{
		{"A. Definitions", 2},
		{"b) Scope of Work", 3},
		{"IV. Warranties", 2},
		{"iii) Sub-clause text here", 3},
	}
	for _, tc := range cases {
		level, _, ok := c.Classify(tc.line)
		if !ok {
			t.Errorf("%q: expected heading, got none", tc.line)
			continue
		}
		if level != tc.level {
			t.Errorf("%q: expected level %d, got %d", tc.line, tc.level, level)
		}
	}
}

func TestClassify_CapsAndTitleCase(t *testing.T) {
	var c Classifier

	level, title, ok := c.Classify("GENERAL PROVISIONS")
	if !ok || level != 1 {
		t.Errorf("ALL-CAPS: expected level 1 heading, got ok=%v level=%d", ok, level)
	}
	if title != "GENERAL PROVISIONS" {
		t.Errorf("expected title preserved, got %q", title)
	}

	level, _, ok = c.Classify("Limitation Of Liability")
	if !ok || level != 2 {
		t.Errorf("Title-Case: expected level 2 heading, got ok=%v level=%d", ok, level)
	}

	if _, _, ok := c.Classify("Key Obligations:"); !ok {
		t.Error("colon-terminated short line: expected heading")
	}
}

func TestClassify_BodyTextRejected(t *testing.T) {
	var c Classifier
	body := []string{
		"",
		"xy",
		"the contract is governed by the laws of the state in which it was signed and all",
		"This sentence describes what the parties agreed to in the meeting last week, nothing more.",
		// Numbered but far too long to be a heading.
		"1. " + strings.Repeat("very long list item text ", 10),
	}
	for _, line := range body {
		if _, _, ok := c.Classify(line); ok {
			t.Errorf("%q: expected body text, classified as heading", line)
		}
	}
}

func TestClassify_NumberedListItemOverLengthCeiling(t *testing.T) {
	var c Classifier
	line := "2.1 " + strings.Repeat("word ", 30) // well over MaxHeadingLen
	if _, _, ok := c.Classify(line); ok {
		t.Errorf("expected long numbered line to be body text")
	}
}
