package textclean

import "regexp"

// historyMarkers detect the start of quoted prior correspondence. Text
// after the first match is assumed to already exist as an earlier activity
// in the same thread. The list covers long separator runs, "wrote:"-style
// reply markers, forwarded-message banners, and the Czech/Slovak localized
// variants the source traffic actually contains; unrecognized mail-client
// formats pass through untruncated.
var historyMarkers = []*regexp.Regexp{
	regexp.MustCompile(`-{5,}`),
	regexp.MustCompile(`_{5,}`),
	regexp.MustCompile(`(?i)\bdne .{0,150}napsal\(a\):`),
	regexp.MustCompile(`(?i)\bon .{0,150}wrote:`),
	regexp.MustCompile(`(?im)^(od|from):\s.{0,200}(posl[áa]no|sent):`),
	regexp.MustCompile(`(?i)(begin )?forwarded message`),
	regexp.MustCompile(`(?i)p[ůu]vodn[íi] (e-?mail|zpr[áa]va)`),
	regexp.MustCompile(`(?i)odpov[ěe]zen[áa] zpr[áa]va`),
	regexp.MustCompile(`(?i)replied message`),
}

// signatureMarkers detect closing salutations and boilerplate disclaimer
// openers. This list is narrower than historyMarkers and is applied second.
var signatureMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^--[ \t]*$`),
	regexp.MustCompile(`(?i)s pozdravem`),
	regexp.MustCompile(`(?i)s pozdravom`),
	regexp.MustCompile(`(?i)(kind|best) regards`),
	regexp.MustCompile(`(?im)^regards,?[ \t]*$`),
	regexp.MustCompile(`(?i)s p[řr][áa]n[íi]m (p[ěe]kn[ée]ho|hezk[ée]ho) dne`),
	regexp.MustCompile(`(?im)^(d[ěe]kuji|[ďd]akujem|d[íi]ky)[ \t]*$`),
	regexp.MustCompile(`(?i)disclaimer:`),
	regexp.MustCompile(`(?i)confidentiality notice:`),
	regexp.MustCompile(`(?i)tento e-?mail nep[řr]edstavuje`),
	regexp.MustCompile(`(?i)pro p[řr][íi]pad, [žz]e tato zpr[áa]va obsahuje`),
	regexp.MustCompile(`(?i)myslete na [žz]ivotn[íi] prost[řr]ed[íi]`),
	regexp.MustCompile(`(?i)please think about the environment`),
}

// truncateAt cuts text before the earliest match of any marker. The second
// return reports whether any marker fired.
func truncateAt(text string, markers []*regexp.Regexp) (string, bool) {
	cut := len(text)
	for _, re := range markers {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	if cut == len(text) {
		return text, false
	}
	return text[:cut], true
}
