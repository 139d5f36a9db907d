package simulate

// corpusEntry is a name with its popularity (occurrences in a reference
// population). Only entries at or above the configured threshold are used.
type corpusEntry struct {
	Name  string
	Count int
}

// nameCorpus is a fixed list of full names with synthetic popularity
// counts. Order matters: sampling is deterministic per seed.
var nameCorpus = []corpusEntry{
	{"Ada Whitlock", 18450},
	{"Albert Crane", 9320},
	{"Alice Morrow", 15210},
	{"Arthur Penrose", 12040},
	{"Beatrice Hale", 6710},
	{"Bernard Ashby", 4820},
	{"Charles Fenwick", 21330},
	{"Clara Dunmore", 7905},
	{"Cyril Marsh", 2110},
	{"Dorothy Keane", 13870},
	{"Edith Calloway", 8840},
	{"Edward Lindqvist", 19990},
	{"Eleanor Voss", 11260},
	{"Ernest Holloway", 5530},
	{"Florence Tate", 14420},
	{"Frederick Baird", 10075},
	{"Gertrude Lyle", 3120},
	{"George Hartnell", 22610},
	{"Harold Quince", 9980},
	{"Hazel Brightwater", 1840},
	{"Henry Caldwell", 24170},
	{"Ida Ferrington", 2975},
	{"Irene Solberg", 6480},
	{"James Ormond", 25590},
	{"Jessie Parfitt", 4410},
	{"John Abernethy", 26840},
	{"Lilian Roche", 7230},
	{"Louisa Grange", 5090},
	{"Mabel Thornbury", 3660},
	{"Margaret Elsworth", 20480},
	{"Mary Cullinan", 27310},
	{"Maud Everleigh", 1520},
	{"Norman Pike", 6190},
	{"Percy Wakefield", 3870},
	{"Ruth Okonjo", 8120},
	{"Samuel Brand", 16640},
	{"Sidney Carver", 4960},
	{"Stanley Mercer", 7760},
	{"Thomas Redfern", 23900},
	{"Violet Ambrose", 5280},
	{"Walter Finch", 12890},
	{"William Harrow", 25020},
	{"Winifred Sallis", 2390},
}

// popularNames returns corpus names with Count >= minPopularity, in corpus order
func popularNames(minPopularity int) []string {
	var names []string
	for _, e := range nameCorpus {
		if e.Count >= minPopularity {
			names = append(names, e.Name)
		}
	}
	return names
}
