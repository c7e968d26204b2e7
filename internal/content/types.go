package content

// Topic is a named subject area grouping lessons and exercises.
type Topic struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
}

// Lesson is a single instructional unit belonging to a topic.
type Lesson struct {
	ID          string `yaml:"id" json:"id"`
	TopicID     string `yaml:"topic_id" json:"topicId"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Duration    int    `yaml:"duration" json:"duration"` // minutes
	Content     string `yaml:"content" json:"content"`
	CodeExample string `yaml:"code_example,omitempty" json:"codeExample,omitempty"`
}

// Exercise is a practice task belonging to a topic.
type Exercise struct {
	ID           string     `yaml:"id" json:"id"`
	TopicID      string     `yaml:"topic_id" json:"topicId"`
	Title        string     `yaml:"title" json:"title"`
	Description  string     `yaml:"description" json:"description"`
	Difficulty   Difficulty `yaml:"difficulty" json:"difficulty"`
	Instructions string     `yaml:"instructions" json:"instructions"`
	CodeTemplate string     `yaml:"code_template,omitempty" json:"codeTemplate,omitempty"`
	Solution     string     `yaml:"solution,omitempty" json:"solution,omitempty"`
	Hints        []string   `yaml:"hints" json:"hints"`
}

// Bundle is the full set of content records, in file order.
type Bundle struct {
	Topics    []Topic    `yaml:"topics,omitempty" json:"topics"`
	Lessons   []Lesson   `yaml:"lessons,omitempty" json:"lessons"`
	Exercises []Exercise `yaml:"exercises,omitempty" json:"exercises"`
}

func (b *Bundle) merge(other Bundle) {
	b.Topics = append(b.Topics, other.Topics...)
	b.Lessons = append(b.Lessons, other.Lessons...)
	b.Exercises = append(b.Exercises, other.Exercises...)
}
