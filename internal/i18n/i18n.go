// Package i18n carries the bilingual (Bengali/English) message lookup and
// date formatting used on the public verification path and on composed
// certificates. It intentionally holds only the keys those paths render;
// site-wide dictionary contents live with the frontend.
package i18n

import (
	"fmt"
	"strings"
	"time"
)

// Lang selects which variant of a bilingual field pair is shown. There is no
// fallback between variants: an empty variant renders empty.
type Lang string

const (
	LangBengali Lang = "bn"
	LangEnglish Lang = "en"
)

// Parse normalizes a language tag from a query parameter or header. Bengali is
// the site default.
func Parse(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangEnglish)) {
		return LangEnglish
	}
	return LangBengali
}

var messages = map[Lang]map[string]string{
	LangBengali: {
		"certificate_title":            "প্রশিক্ষণ সনদপত্র",
		"this_is_to_certify":           "এই মর্মে প্রত্যয়ন করা যাচ্ছে যে,",
		"student_name":                 "নাম",
		"father_name":                  "পিতার নাম",
		"course_name":                  "কোর্সের নাম",
		"course_duration":              "কোর্সের মেয়াদ",
		"duration":                     "সময়কাল",
		"certificate_id":               "সার্টিফিকেট আইডি",
		"wishing_success":              "আমরা তার সার্বিক সাফল্য কামনা করি।",
		"scan_qr":                      "স্ক্যান করুন",
		"issue_date":                   "ইস্যু তারিখ",
		"director":                     "পরিচালক",
		"digitally_verified":           "ডিজিটালভাবে তৈরি ও যাচাইকৃত",
		"certificate_not_found":        "এই আইডি বা নম্বর দিয়ে কোনো সার্টিফিকেট পাওয়া যায়নি।",
		"uploaded_certificate_title":   "আপলোডকৃত সার্টিফিকেট",
		"student_not_found_for_upload": "এই আইডি এবং মোবাইল নম্বর দিয়ে কোনো ছাত্র পাওয়া যায়নি।",
		"upload_success":               "সার্টিফিকেট সফলভাবে আপলোড করা হয়েছে!",
	},
	LangEnglish: {
		"certificate_title":            "Certificate of Training",
		"this_is_to_certify":           "This is to certify that,",
		"student_name":                 "Name",
		"father_name":                  "Father's Name",
		"course_name":                  "Course Name",
		"course_duration":              "Course Duration",
		"duration":                     "Duration",
		"certificate_id":               "Certificate ID",
		"wishing_success":              "We wish him/her every success in life.",
		"scan_qr":                      "Scan QR",
		"issue_date":                   "Issue Date",
		"director":                     "Director",
		"digitally_verified":           "Digitally generated and verified",
		"certificate_not_found":        "No certificate found with this ID or number.",
		"uploaded_certificate_title":   "Uploaded Certificate",
		"student_not_found_for_upload": "No student found with this ID and mobile number.",
		"upload_success":               "Certificate uploaded successfully!",
	},
}

// T resolves a message key for a language. Unknown keys return the key itself
// so a missing entry is visible rather than blank.
func T(lang Lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return key
}

var bengaliMonths = [...]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

var bengaliDigits = [...]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// ToBengaliDigits rewrites ASCII digits into Bengali numerals, leaving all
// other runes untouched.
func ToBengaliDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(bengaliDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatLongDate renders a calendar date in the long convention of the
// language: "January 2, 2006" for English, "২ জানুয়ারি, ২০০৬" for Bengali.
func FormatLongDate(lang Lang, t time.Time) string {
	if lang == LangBengali {
		s := fmt.Sprintf("%d %s, %d", t.Day(), bengaliMonths[t.Month()-1], t.Year())
		return ToBengaliDigits(s)
	}
	return t.Format("January 2, 2006")
}
