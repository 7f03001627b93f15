// Package skills holds the fixed language/framework vocabulary and the canonical
// name table used for every skill comparison in the pipeline.
package skills

// Kind distinguishes programming languages from frameworks and tools.
type Kind int

const (
	// Language is a programming language.
	Language Kind = iota
	// Framework is a framework, platform, or tool.
	Framework
)

// Term is one vocabulary entry. Surfaces are the spellings searched for in text;
// surfaces of two characters or fewer are matched case-sensitively.
type Term struct {
	Canonical string
	Kind      Kind
	Surfaces  []string
	// CaseSensitive forces exact-case matching for every surface
	CaseSensitive bool
}

// Languages is the language vocabulary.
var Languages = []Term{
	{Canonical: "Python", Surfaces: []string{"Python"}},
	{Canonical: "Java", Surfaces: []string{"Java"}},
	{Canonical: "JavaScript", Surfaces: []string{"JavaScript", "JS"}},
	{Canonical: "TypeScript", Surfaces: []string{"TypeScript", "TS"}},
	{Canonical: "C++", Surfaces: []string{"C++", "cpp"}},
	{Canonical: "C#", Surfaces: []string{"C#", "csharp"}},
	{Canonical: "C", Surfaces: []string{"C"}},
	{Canonical: "Go", Surfaces: []string{"Go", "Golang"}},
	{Canonical: "Rust", Surfaces: []string{"Rust"}},
	{Canonical: "Ruby", Surfaces: []string{"Ruby"}},
	{Canonical: "PHP", Surfaces: []string{"PHP"}},
	{Canonical: "Swift", Surfaces: []string{"Swift"}},
	{Canonical: "Kotlin", Surfaces: []string{"Kotlin"}},
	{Canonical: "Scala", Surfaces: []string{"Scala"}},
	{Canonical: "R", Surfaces: []string{"R"}},
	{Canonical: "MATLAB", Surfaces: []string{"MATLAB"}},
	{Canonical: "Perl", Surfaces: []string{"Perl"}},
	{Canonical: "Haskell", Surfaces: []string{"Haskell"}},
	{Canonical: "Elixir", Surfaces: []string{"Elixir"}},
	{Canonical: "Clojure", Surfaces: []string{"Clojure"}},
	{Canonical: "Dart", Surfaces: []string{"Dart"}},
	{Canonical: "Objective-C", Surfaces: []string{"Objective-C", "objc"}},
	{Canonical: "Lua", Surfaces: []string{"Lua"}},
	{Canonical: "Shell/Bash", Surfaces: []string{"Shell", "Bash"}},
	{Canonical: "SQL", Surfaces: []string{"SQL"}},
	{Canonical: "HTML", Surfaces: []string{"HTML"}},
	{Canonical: "CSS", Surfaces: []string{"CSS"}},
}

// Frameworks is the framework and tooling vocabulary.
var Frameworks = []Term{
	{Canonical: "React", Surfaces: []string{"React", "React.js", "ReactJS"}},
	{Canonical: "Angular", Surfaces: []string{"Angular"}},
	{Canonical: "Vue", Surfaces: []string{"Vue", "Vue.js", "VueJS"}},
	{Canonical: "Next.js", Surfaces: []string{"Next.js"}},
	{Canonical: "Nuxt", Surfaces: []string{"Nuxt"}},
	{Canonical: "Django", Surfaces: []string{"Django"}},
	{Canonical: "Flask", Surfaces: []string{"Flask"}},
	{Canonical: "FastAPI", Surfaces: []string{"FastAPI"}},
	{Canonical: "Spring", Surfaces: []string{"Spring"}},
	{Canonical: "Spring Boot", Surfaces: []string{"Spring Boot"}},
	{Canonical: "Rails", Surfaces: []string{"Rails"}},
	{Canonical: "Ruby on Rails", Surfaces: []string{"Ruby on Rails"}},
	{Canonical: "Express", Surfaces: []string{"Express"}},
	{Canonical: "Node.js", Surfaces: []string{"Node.js", "NodeJS"}},
	{Canonical: "TensorFlow", Surfaces: []string{"TensorFlow"}},
	{Canonical: "PyTorch", Surfaces: []string{"PyTorch"}},
	{Canonical: "Keras", Surfaces: []string{"Keras"}},
	{Canonical: "Kubernetes", Surfaces: []string{"Kubernetes", "k8s"}},
	{Canonical: "Docker", Surfaces: []string{"Docker"}},
	{Canonical: "AWS", Surfaces: []string{"AWS"}},
	{Canonical: "GCP", Surfaces: []string{"GCP"}},
	{Canonical: "Azure", Surfaces: []string{"Azure"}},
	{Canonical: "Terraform", Surfaces: []string{"Terraform"}},
	{Canonical: "Ansible", Surfaces: []string{"Ansible"}},
	{Canonical: ".NET", Surfaces: []string{".NET"}},
	{Canonical: "ASP.NET", Surfaces: []string{"ASP.NET"}},
	{Canonical: "Laravel", Surfaces: []string{"Laravel"}},
	{Canonical: "Symfony", Surfaces: []string{"Symfony"}},
	{Canonical: "Svelte", Surfaces: []string{"Svelte"}},
	{Canonical: "GraphQL", Surfaces: []string{"GraphQL"}},
	{Canonical: "REST", Surfaces: []string{"REST"}, CaseSensitive: true},
	{Canonical: "gRPC", Surfaces: []string{"gRPC"}},
	{Canonical: "Kafka", Surfaces: []string{"Kafka"}},
	{Canonical: "RabbitMQ", Surfaces: []string{"RabbitMQ"}},
	{Canonical: "Redis", Surfaces: []string{"Redis"}},
	{Canonical: "PostgreSQL", Surfaces: []string{"PostgreSQL", "Postgres"}},
	{Canonical: "MySQL", Surfaces: []string{"MySQL"}},
	{Canonical: "MongoDB", Surfaces: []string{"MongoDB"}},
	{Canonical: "Elasticsearch", Surfaces: []string{"Elasticsearch"}},
	{Canonical: "Spark", Surfaces: []string{"Spark"}},
	{Canonical: "Hadoop", Surfaces: []string{"Hadoop"}},
	{Canonical: "Airflow", Surfaces: []string{"Airflow"}},
	{Canonical: "dbt", Surfaces: []string{"dbt"}, CaseSensitive: true},
	{Canonical: "Snowflake", Surfaces: []string{"Snowflake"}},
	{Canonical: "BigQuery", Surfaces: []string{"BigQuery"}},
}

func init() {
	for i := range Frameworks {
		Frameworks[i].Kind = Framework
	}
}
