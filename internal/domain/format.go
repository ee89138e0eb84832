package domain

type FormatSlug string

const (
	FormatDigital            FormatSlug = "digital"
	FormatFisico             FormatSlug = "fisico"
	FormatDigitalAudio       FormatSlug = "digital_audio"
	FormatDigitalVideo       FormatSlug = "digital_video"
	FormatDigitalFisicoAudio FormatSlug = "digital_fisico_audio"
	FormatFullPremium        FormatSlug = "full_premium"
)

type Format struct {
	Slug           FormatSlug
	Label          string
	UnitPriceCents int64
	NeedsAudio     bool
	NeedsVideo     bool
}

// Catalog order matches the storefront's format selector.
var formats = []Format{
	{Slug: FormatDigital, Label: "Carta Digital", UnitPriceCents: 7900},
	{Slug: FormatFisico, Label: "Carta Física", UnitPriceCents: 12900},
	{Slug: FormatDigitalAudio, Label: "Digital + Áudio", UnitPriceCents: 14900, NeedsAudio: true},
	{Slug: FormatDigitalVideo, Label: "Digital + Vídeo", UnitPriceCents: 17900, NeedsVideo: true},
	{Slug: FormatDigitalFisicoAudio, Label: "Digital + Física + Áudio", UnitPriceCents: 24900, NeedsAudio: true},
	{Slug: FormatFullPremium, Label: "Full Premium", UnitPriceCents: 31900, NeedsAudio: true, NeedsVideo: true},
}

func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

func FormatBySlug(slug FormatSlug) (Format, bool) {
	for _, f := range formats {
		if f.Slug == slug {
			return f, true
		}
	}
	return Format{}, false
}
