package piped

// builtinHosts is the curated fleet of public Piped API mirrors probed
// on startup. User-configured mirrors are appended at registry build
// time, see Default.
var builtinHosts = []string{
	"https://pipedapi.kavin.rocks",
	"https://pipedapi.tokhmi.xyz",
	"https://pipedapi.moomoo.me",
	"https://pipedapi.syncpundit.io",
	"https://api-piped.mha.fi",
	"https://piped-api.garudalinux.org",
	"https://pipedapi.rivo.lol",
	"https://pipedapi.aeong.one",
	"https://pipedapi.leptons.xyz",
	"https://piped-api.lunar.icu",
	"https://pipedapi-libre.kavin.rocks",
	"https://pa.mint.lgbt",
	"https://pa.il.ax",
	"https://piped-api.privacy.com.de",
	"https://api.piped.projectsegfau.lt",
	"https://pipedapi.in.projectsegfau.lt",
	"https://pipedapi.us.projectsegfau.lt",
	"https://watchapi.whatever.social",
	"https://api.piped.privacydev.net",
	"https://pipedapi.palveluntarjoaja.eu",
	"https://pipedapi.smnz.de",
	"https://pipedapi.adminforge.de",
	"https://pipedapi.qdi.fi",
	"https://piped-api.hostux.net",
	"https://pdapi.vern.cc",
	"https://pipedapi.pfcd.me",
	"https://pipedapi.frontendfriendly.xyz",
	"https://api.piped.yt",
	"https://pipedapi.astartes.nl",
	"https://pipedapi.osphost.fi",
	"https://pipedapi.simpleprivacy.fr",
	"https://pipedapi.drgns.space",
	"https://piapi.ggtyler.dev",
}
