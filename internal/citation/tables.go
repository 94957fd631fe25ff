// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

// Static routing tables. The domain tables match by substring of the URL
// host with first match winning, so they are ordered slices rather than
// maps; iteration stays deterministic across runs.

type domainName struct {
	domain string
	name   string
}

// newspaperDomains maps URL hosts to canonical publication names.
var newspaperDomains = []domainName{
	{"nytimes.com", "The New York Times"}, {"washingtonpost.com", "The Washington Post"},
	{"wsj.com", "The Wall Street Journal"}, {"usatoday.com", "USA Today"},
	{"latimes.com", "Los Angeles Times"}, {"chicagotribune.com", "Chicago Tribune"},
	{"bostonglobe.com", "The Boston Globe"}, {"sfchronicle.com", "San Francisco Chronicle"},
	{"houstonchronicle.com", "Houston Chronicle"}, {"dallasnews.com", "The Dallas Morning News"},
	{"miamiherald.com", "Miami Herald"}, {"seattletimes.com", "The Seattle Times"},
	{"denverpost.com", "The Denver Post"}, {"inquirer.com", "The Philadelphia Inquirer"},
	{"ajc.com", "The Atlanta Journal-Constitution"}, {"startribune.com", "Star Tribune"},
	{"nypost.com", "New York Post"}, {"nydailynews.com", "New York Daily News"},
	{"csmonitor.com", "The Christian Science Monitor"}, {"baltimoresun.com", "The Baltimore Sun"},
	{"detroitnews.com", "The Detroit News"}, {"freep.com", "Detroit Free Press"},
	{"theguardian.com", "The Guardian"}, {"ft.com", "Financial Times"},
	{"bbc.com", "BBC News"}, {"reuters.com", "Reuters"}, {"apnews.com", "Associated Press"},
	{"aljazeera.com", "Al Jazeera"}, {"economist.com", "The Economist"},
	{"independent.co.uk", "The Independent"}, {"telegraph.co.uk", "The Telegraph"},
	{"thetimes.co.uk", "The Times"}, {"cbc.ca", "CBC News"}, {"scmp.com", "South China Morning Post"},
	{"newyorker.com", "The New Yorker"}, {"theatlantic.com", "The Atlantic"},
	{"time.com", "Time"}, {"newsweek.com", "Newsweek"}, {"vanityfair.com", "Vanity Fair"},
	{"harpers.org", "Harper's Magazine"}, {"nymag.com", "New York Magazine"},
	{"rollingstone.com", "Rolling Stone"}, {"slate.com", "Slate"}, {"salon.com", "Salon"},
	{"vox.com", "Vox"}, {"vice.com", "Vice"}, {"politico.com", "Politico"},
	{"thehill.com", "The Hill"}, {"motherjones.com", "Mother Jones"},
	{"nationalreview.com", "National Review"}, {"newrepublic.com", "The New Republic"},
	{"jacobin.com", "Jacobin"}, {"reason.com", "Reason"}, {"wired.com", "Wired"},
	{"theverge.com", "The Verge"}, {"techcrunch.com", "TechCrunch"},
	{"arstechnica.com", "Ars Technica"}, {"scientificamerican.com", "Scientific American"},
	{"nationalgeographic.com", "National Geographic"}, {"popsci.com", "Popular Science"},
	{"psychologytoday.com", "Psychology Today"}, {"nature.com", "Nature"},
	{"science.org", "Science"}, {"forbes.com", "Forbes"}, {"fortune.com", "Fortune"},
	{"businessinsider.com", "Business Insider"}, {"bloomberg.com", "Bloomberg"},
	{"hbr.org", "Harvard Business Review"},
}

// govDomains maps government URL hosts to issuing agency names.
var govDomains = []domainName{
	{"state.gov", "U.S. Department of State"}, {"treasury.gov", "U.S. Department of the Treasury"},
	{"defense.gov", "U.S. Department of Defense"}, {"justice.gov", "U.S. Department of Justice"},
	{"doi.gov", "U.S. Department of the Interior"}, {"usda.gov", "U.S. Department of Agriculture"},
	{"commerce.gov", "U.S. Department of Commerce"}, {"labor.gov", "U.S. Department of Labor"},
	{"hhs.gov", "U.S. Department of Health and Human Services"},
	{"hud.gov", "U.S. Department of Housing and Urban Development"},
	{"transportation.gov", "U.S. Department of Transportation"}, {"energy.gov", "U.S. Department of Energy"},
	{"doe.gov", "U.S. Department of Energy"}, {"education.gov", "U.S. Department of Education"},
	{"va.gov", "U.S. Department of Veterans Affairs"}, {"dhs.gov", "U.S. Department of Homeland Security"},
	{"fda.gov", "U.S. Food and Drug Administration"}, {"cdc.gov", "Centers for Disease Control and Prevention"},
	{"nih.gov", "National Institutes of Health"}, {"epa.gov", "Environmental Protection Agency"},
	{"ferc.gov", "Federal Energy Regulatory Commission"}, {"whitehouse.gov", "The White House"},
	{"congress.gov", "U.S. Congress"}, {"regulations.gov", "U.S. Government"},
	{"supremecourt.gov", "Supreme Court of the United States"},
	{"uscourts.gov", "Administrative Office of the U.S. Courts"},
	{"archives.gov", "National Archives and Records Administration"},
}

// agencyNames is the flattened agency list used for fuzzy text matching,
// covering agencies whose domains are not in govDomains.
var agencyNames = buildAgencyNames()

func buildAgencyNames() []string {
	names := make([]string, 0, len(govDomains)+7)
	for _, d := range govDomains {
		names = append(names, d.name)
	}
	return append(names,
		"U.S. Citizenship and Immigration Services",
		"Federal Aviation Administration",
		"National Oceanic and Atmospheric Administration",
		"Centers for Medicare & Medicaid Services",
		"Federal Bureau of Investigation",
		"Central Intelligence Agency",
		"National Security Agency",
	)
}

// landmarkCase is one entry in the local case cache.
type landmarkCase struct {
	caseName string
	citation string
	year     string
	court    string
}

// landmarkCases maps normalized case-name keys to known citations, saving a
// lookup round trip for the cases people actually cite.
var landmarkCases = map[string]landmarkCase{
	"palsgraf lirr":           {"Palsgraf v. Long Island R.R. Co.", "248 N.Y. 339", "1928", "N.Y."},
	"roe v wade":              {"Roe v. Wade", "410 U.S. 113", "1973", "SCOTUS"},
	"brown v board":           {"Brown v. Board of Education", "347 U.S. 483", "1954", "SCOTUS"},
	"miranda v arizona":       {"Miranda v. Arizona", "384 U.S. 436", "1966", "SCOTUS"},
	"obergefell v hodges":     {"Obergefell v. Hodges", "576 U.S. 644", "2015", "SCOTUS"},
	"citizens united v fec":   {"Citizens United v. FEC", "558 U.S. 310", "2010", "SCOTUS"},
	"dobbs v jackson":         {"Dobbs v. Jackson Women's Health Organization", "597 U.S. 215", "2022", "SCOTUS"},
	"marbury v madison":       {"Marbury v. Madison", "5 U.S. 137", "1803", "SCOTUS"},
	"kitzmiller v dover":      {"Kitzmiller v. Dover Area School Dist.", "400 F. Supp. 2d 707", "2005", "M.D. Pa."},
	"united states v microsoft": {"United States v. Microsoft Corp.", "253 F.3d 34", "2001", "D.C. Cir."},
	"chevron v nrdc":          {"Chevron U.S.A. Inc. v. Natural Resources Defense Council, Inc.", "467 U.S. 837", "1984", "SCOTUS"},
	"lochner v new york":      {"Lochner v. New York", "198 U.S. 45", "1905", "SCOTUS"},
	"bush v gore":             {"Bush v. Gore", "531 U.S. 98", "2000", "SCOTUS"},
}

// publisherPlaces maps publisher names to their conventional place of
// publication, matched by case-insensitive substring.
var publisherPlaces = []domainName{
	{"Harvard University Press", "Cambridge, MA"}, {"MIT Press", "Cambridge, MA"},
	{"Yale University Press", "New Haven"}, {"Princeton University Press", "Princeton"},
	{"Stanford University Press", "Stanford"}, {"University of California Press", "Berkeley"},
	{"University of Chicago Press", "Chicago"}, {"Columbia University Press", "New York"},
	{"Oxford University Press", "Oxford"}, {"Cambridge University Press", "Cambridge"},
	{"Penguin", "New York"}, {"Random House", "New York"}, {"HarperCollins", "New York"},
	{"Simon & Schuster", "New York"}, {"W. W. Norton", "New York"}, {"Knopf", "New York"},
}

// interviewTriggers route a citation into the interview branch.
var interviewTriggers = []string{"interview", "oral history", "personal communication", "conversation with"}
