package rewrite

import (
	"fmt"
	"strings"
)

const systemPrompt = "Sei un assistente di comunicazione pubblica italiano."

// Markers the prompt asks the model to emit before each section, and
// that ExtractSections later looks for.
var sectionMarkers = map[Section]string{
	SectionPressRelease:   "COMUNICATO_STAMPA",
	SectionWebsiteArticle: "SITO_ISTITUZIONALE",
	SectionSocialFBIG:     "SOCIAL_FB_IG",
	SectionSocialLinkedIn: "SOCIAL_LI",
	SectionSocialX:        "SOCIAL_X",
}

// BuildPrompt assembles the rewrite instruction from the profile, the
// extracted source material and the per-request options.
func BuildPrompt(req Request) string {
	profile := req.Profile

	tones := strings.Join(profile.Tones, ", ")
	if profile.CustomTone != "" {
		if tones != "" {
			tones += ", "
		}
		tones += profile.CustomTone
	}
	if tones == "" {
		tones = "istituzionale ma vicino alle persone"
	}

	emojiRule := "Non usare emoji."
	if profile.UseEmoji {
		emojiRule = "Emoji consentite con moderazione sui canali social."
	}

	var b strings.Builder

	fmt.Fprintf(&b,
		"Sei l'ufficio comunicazione di %s. Scrivi in italiano. Tono: %s. Firma: %s, %s.\n\n",
		orDash(profile.Organization), tones, orDash(profile.Name), orDash(profile.Role))

	fmt.Fprintf(&b,
		"Contesto da documenti/articoli (usa solo se rilevante, evita ripetizioni):\n\n%s\n\n",
		req.SourceText)

	fmt.Fprintf(&b, "Temi aggiuntivi richiesti: %s\n", orDash(req.Topics))
	fmt.Fprintf(&b, "Pubblico principale: %s\n", orDash(req.Audience))
	fmt.Fprintf(&b, "Foto allegata: %s\n", orNo(req.PhotoURL))

	if profile.StyleGuide != "" {
		fmt.Fprintf(&b, "\nGuida di stile da rispettare:\n%s\n", profile.StyleGuide)
	}

	socialExtras := ""
	if req.Hashtags {
		socialExtras += " + 2-4 hashtag pertinenti"
	}
	if req.CallToAction {
		socialExtras += " + chiusa con invito/CTA (date, link, partecipazione)"
	}

	fmt.Fprintf(&b, `
Produci:
1) COMUNICATO_STAMPA (600-900 parole), con titolo, occhiello, corpo, citazione.
2) SITO_ISTITUZIONALE (400-700 parole), con H2/H3, punti elenco operativi se utile.
3) SOCIAL_FB_IG (max 900 caratteri), tono empatico ma sobrio%s.
4) SOCIAL_LI (max 700 caratteri), più istituzionale, adatto a una pagina ufficiale.
5) SOCIAL_X (max 280 caratteri), incisivo e chiaro.

Regole:
- Evita tecnicismi non necessari; spiega con semplicità.
- Niente promesse non verificate.
- Mantieni coerenza con il ruolo istituzionale.
- %s
- Inserisci eventuali riferimenti temporali/concreti se presenti nel contesto.
- Usa **doppi asterischi** per le frasi da evidenziare.
- Formatta ciascuna sezione iniziando con >>>NOME_SEZIONE<<< su una riga.
`, socialExtras, emojiRule)

	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}

	return s
}

func orNo(s string) string {
	if strings.TrimSpace(s) == "" {
		return "no"
	}

	return s
}
