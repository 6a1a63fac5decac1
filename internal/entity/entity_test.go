/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "testing"

func TestIsProfessional(t *testing.T) {
	professionals := []Role{RoleTherapist, RoleNGO, RoleVolunteer}
	for _, role := range professionals {
		if !role.IsProfessional() {
			t.Errorf("%s should count as a professional", role)
		}
	}

	for _, role := range []Role{RoleUser, RoleAdmin} {
		if role.IsProfessional() {
			t.Errorf("%s should not count as a professional", role)
		}
	}
}

func TestMessageHasContent(t *testing.T) {
	if (&Message{}).HasContent() {
		t.Errorf("a message with no text, image or audio has no content")
	}
	if !(&Message{Text: "hi"}).HasContent() {
		t.Errorf("text alone is content")
	}
	if !(&Message{Audio: "https://cdn.example.com/note.mp3"}).HasContent() {
		t.Errorf("an audio note alone is content")
	}

	if (&GroupMessage{}).HasContent() {
		t.Errorf("a group message with no text, image or audio has no content")
	}
	if !(&GroupMessage{Image: "https://cdn.example.com/pic.png"}).HasContent() {
		t.Errorf("an image alone is content")
	}
}
