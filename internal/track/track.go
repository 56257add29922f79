package track

import "errors"

// ID identifies a career track. All challenge and motivation state is scoped
// by the selected track; the empty ID means no track has been chosen yet.
type ID string

const (
	DataScientist  ID = "ds"
	DataEngineer   ID = "de"
	SoftwareEng    ID = "swe"
	MLEngineer     ID = "mle"
	DeepLearning   ID = "dle"
	ComputerVision ID = "cve"
)

// Track is an immutable catalog entry for a career path.
type Track struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Skills      []string
	Achievers   []string
}

var catalog = []Track{
	{
		ID:          DataScientist,
		Name:        "Data Scientist",
		Description: "Master statistics, ML algorithms, and data storytelling",
		Icon:        "📊",
		Skills:      []string{"Statistics", "Python", "ML", "Data Visualization", "SQL"},
		Achievers:   []string{"Andrew Ng", "Cassie Kozyrkov", "Hilary Mason"},
	},
	{
		ID:          DataEngineer,
		Name:        "Data Engineer",
		Description: "Build robust data pipelines and infrastructure",
		Icon:        "🔧",
		Skills:      []string{"ETL", "SQL", "Python", "Spark", "Cloud Platforms"},
		Achievers:   []string{"Maxime Beauchemin", "Jay Kreps", "Martin Kleppmann"},
	},
	{
		ID:          SoftwareEng,
		Name:        "Software Engineer",
		Description: "Create scalable applications and systems",
		Icon:        "💻",
		Skills:      []string{"DSA", "System Design", "APIs", "Databases", "Testing"},
		Achievers:   []string{"Linus Torvalds", "Guido van Rossum", "John Carmack"},
	},
	{
		ID:          MLEngineer,
		Name:        "Machine Learning Engineer",
		Description: "Deploy ML models to production at scale",
		Icon:        "🤖",
		Skills:      []string{"ML Ops", "Model Deployment", "Python", "Docker", "Kubernetes"},
		Achievers:   []string{"Chip Huyen", "Jeremy Howard", "Rachel Thomas"},
	},
	{
		ID:          DeepLearning,
		Name:        "Deep Learning Engineer",
		Description: "Build and train neural networks for complex problems",
		Icon:        "🧠",
		Skills:      []string{"Neural Networks", "PyTorch/TensorFlow", "GPUs", "Research Papers"},
		Achievers:   []string{"Andrej Karpathy", "Ian Goodfellow", "Yann LeCun"},
	},
	{
		ID:          ComputerVision,
		Name:        "Computer Vision Engineer",
		Description: "Teach machines to see and understand images",
		Icon:        "👁️",
		Skills:      []string{"CNNs", "Image Processing", "OpenCV", "Object Detection", "Segmentation"},
		Achievers:   []string{"Fei-Fei Li", "Kaiming He", "Ross Girshick"},
	},
}

// ErrUnknownTrack is returned when an identifier names no catalog entry.
var ErrUnknownTrack = errors.New("unknown career track")

// All returns the full track catalog in display order.
func All() []Track {
	out := make([]Track, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a track by its identifier.
func ByID(id ID) (Track, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}

// Valid reports whether id names a known track.
func Valid(id ID) bool {
	_, ok := ByID(id)
	return ok
}
