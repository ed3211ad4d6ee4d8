// pkg/lexicon/lexicon.go
package lexicon

// Curated term lists used by the placeholder filter and the field
// classifier. All data here is fixed at compile time and must never be
// mutated at runtime: every set is shared across concurrently processed
// rows.

// PlaceholderTokens are cell values that carry no information. Matching is
// done on the trimmed, lowercased value.
var PlaceholderTokens = map[string]bool{
	"":               true,
	"-":              true,
	"--":             true,
	"na":             true,
	"n/a":            true,
	"n.a":            true,
	"nil":            true,
	"none":           true,
	"null":           true,
	"tbd":            true,
	"tba":            true,
	"pending":        true,
	"negotiable":     true,
	"flexible":       true,
	"open":           true,
	"competitive":    true,
	"will share":     true,
	"not applicable": true,
	"not specified":  true,
	"not mentioned":  true,
	"not available":  true,
	"not disclosed":  true,
	"no idea":        true,
	"dont know":      true,
	"don't know":     true,
	"unknown":        true,
	"confidential":   true,
}

// PlaceholderPrefixes catch phrase-style non-answers such as
// "as per company norms" or "to be decided".
var PlaceholderPrefixes = []string{
	"as per",
	"to be",
	"depends",
	"best in",
}

// Cities are common Indian hiring locations plus remote markers.
var Cities = map[string]bool{
	"bangalore":          true,
	"bengaluru":          true,
	"mumbai":             true,
	"navi mumbai":        true,
	"delhi":              true,
	"new delhi":          true,
	"ncr":                true,
	"gurgaon":            true,
	"gurugram":           true,
	"noida":              true,
	"hyderabad":          true,
	"chennai":            true,
	"pune":               true,
	"kolkata":            true,
	"ahmedabad":          true,
	"jaipur":             true,
	"lucknow":            true,
	"indore":             true,
	"chandigarh":         true,
	"kochi":              true,
	"cochin":             true,
	"coimbatore":         true,
	"thiruvananthapuram": true,
	"trivandrum":         true,
	"bhubaneswar":        true,
	"nagpur":             true,
	"vadodara":           true,
	"surat":              true,
	"visakhapatnam":      true,
	"mysore":             true,
	"mysuru":             true,
	"remote":             true,
	"work from home":     true,
	"wfh":                true,
	"hybrid":             true,
	"pan india":          true,
	"anywhere":           true,
}

// TitleWords are tokens that strongly suggest a job title.
var TitleWords = map[string]bool{
	"engineer":       true,
	"developer":      true,
	"programmer":     true,
	"architect":      true,
	"manager":        true,
	"lead":           true,
	"head":           true,
	"director":       true,
	"analyst":        true,
	"consultant":     true,
	"designer":       true,
	"scientist":      true,
	"administrator":  true,
	"executive":      true,
	"officer":        true,
	"specialist":     true,
	"associate":      true,
	"intern":         true,
	"trainee":        true,
	"tester":         true,
	"recruiter":      true,
	"accountant":     true,
	"software":       true,
	"senior":         true,
	"junior":         true,
	"principal":      true,
	"staff":          true,
	"fullstack":      true,
	"frontend":       true,
	"backend":        true,
	"devops":         true,
	"sre":            true,
	"qa":             true,
	"sde":            true,
	"hr":             true,
	"sales":          true,
	"marketing":      true,
	"operations":     true,
	"product":        true,
	"data":           true,
	"android":        true,
	"ios":            true,
}

// CVSources are hiring platforms and sourcing channels.
var CVSources = map[string]bool{
	"naukri":        true,
	"naukri.com":    true,
	"linkedin":      true,
	"indeed":        true,
	"monster":       true,
	"shine":         true,
	"glassdoor":     true,
	"instahyre":     true,
	"cutshort":      true,
	"hirist":        true,
	"iimjobs":       true,
	"angellist":     true,
	"wellfound":     true,
	"referral":      true,
	"reference":     true,
	"job portal":    true,
	"portal":        true,
	"consultancy":   true,
	"campus":        true,
	"walk-in":       true,
	"walkin":        true,
	"direct":        true,
	"vendor":        true,
}

// StatusWords are pipeline stages a candidate can sit in.
var StatusWords = map[string]bool{
	"new":             true,
	"active":          true,
	"screening":       true,
	"screened":        true,
	"shortlisted":     true,
	"interview":       true,
	"interviewing":    true,
	"interviewed":     true,
	"scheduled":       true,
	"in process":      true,
	"in progress":     true,
	"on hold":         true,
	"hold":            true,
	"offered":         true,
	"offer released":  true,
	"offer accepted":  true,
	"offer declined":  true,
	"selected":        true,
	"rejected":        true,
	"joined":          true,
	"onboarded":       true,
	"dropped":         true,
	"backed out":      true,
	"no show":         true,
	"withdrawn":       true,
}

// CompanySuffixes are legal-entity and industry suffix tokens.
var CompanySuffixes = map[string]bool{
	"pvt":          true,
	"ltd":          true,
	"limited":      true,
	"llp":          true,
	"inc":          true,
	"corp":         true,
	"corporation":  true,
	"technologies": true,
	"technology":   true,
	"tech":         true,
	"solutions":    true,
	"systems":      true,
	"services":     true,
	"software":     true,
	"labs":         true,
	"consulting":   true,
	"consultancy":  true,
	"infotech":     true,
	"industries":   true,
	"enterprises":  true,
	"global":       true,
	"group":        true,
}

// KnownEmployers are organizations that appear constantly in Indian
// candidate sheets without any entity suffix.
var KnownEmployers = map[string]bool{
	"tcs":       true,
	"infosys":   true,
	"wipro":     true,
	"accenture": true,
	"cognizant": true,
	"capgemini": true,
	"hcl":       true,
	"ibm":       true,
	"deloitte":  true,
	"google":    true,
	"microsoft": true,
	"amazon":    true,
	"flipkart":  true,
	"paytm":     true,
	"zoho":      true,
	"oracle":    true,
	"sap":       true,
	"mindtree":  true,
	"mphasis":   true,
	"tech mahindra": true,
}

// NonPersonTokens disqualify a value from being a contact-person (SPOC)
// name: units, employer suffixes and similar noise.
var NonPersonTokens = map[string]bool{
	"lpa":     true,
	"lakh":    true,
	"lakhs":   true,
	"lac":     true,
	"ctc":     true,
	"yrs":     true,
	"years":   true,
	"months":  true,
	"days":    true,
	"pvt":     true,
	"ltd":     true,
	"limited": true,
	"llp":     true,
	"inc":     true,
}
