package facts

// Fact is an LLM-generated trivia blurb about a specific car.
type Fact struct {
	Make     string
	Model    string
	Year     int
	Headline string
	Detail   string
}

// FactInput identifies the car a fact should be generated for.
type FactInput struct {
	Make  string
	Model string
	Year  int
}
