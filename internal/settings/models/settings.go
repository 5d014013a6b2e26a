package models

// Feature is one highlighted feature card on the home page.
type Feature struct {
	ID            string `json:"id"`
	Icon          string `json:"icon"`
	TitleBN       string `json:"title_bn"`
	TitleEN       string `json:"title_en"`
	DescriptionBN string `json:"description_bn"`
	DescriptionEN string `json:"description_en"`
}

// WhyChooseUsItem is one entry in the "why choose us" section.
type WhyChooseUsItem struct {
	ID            string `json:"id"`
	Icon          string `json:"icon"`
	TitleBN       string `json:"title_bn"`
	TitleEN       string `json:"title_en"`
	DescriptionBN string `json:"description_bn"`
	DescriptionEN string `json:"description_en"`
}

// SiteSettings is the singleton site configuration document edited from the
// admin panel. It is always replaced whole, never patched field by field.
type SiteSettings struct {
	NameBN              string            `json:"name_bn"`
	NameEN              string            `json:"name_en"`
	LogoURL             string            `json:"logoUrl"`
	FaviconURL          string            `json:"faviconUrl"`
	SignatureURL        string            `json:"signatureUrl"`
	DescriptionBN       string            `json:"description_bn"`
	DescriptionEN       string            `json:"description_en"`
	AddressBN           string            `json:"address_bn"`
	AddressEN           string            `json:"address_en"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	WhatsappNumber      string            `json:"whatsappNumber"`
	GoogleMapURL        string            `json:"googleMapUrl"`
	Features            []Feature         `json:"features"`
	WhyChooseUs         []WhyChooseUsItem `json:"whyChooseUs"`
	WhyChooseUsImageURL string            `json:"whyChooseUsImageUrl"`
}

// Default returns the settings a fresh installation starts with. The names
// are placeholders the administrator replaces on first login.
func Default() *SiteSettings {
	return &SiteSettings{
		NameBN:      "কারিগরি প্রশিক্ষণ কেন্দ্র",
		NameEN:      "Technical Training Center",
		Features:    []Feature{},
		WhyChooseUs: []WhyChooseUsItem{},
	}
}
