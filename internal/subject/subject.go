// Package subject defines the fixed six-subject exam configuration.
package subject

// Subject enumerates the six exam subjects in their declared order.
type Subject int

const (
	Mathematics Subject = iota
	Science
	Language
	English
	Religion
	History

	subjectCount
)

// Info describes a subject's exam parameters and topic universe.
type Info struct {
	Name         string
	MaxQuestions int
	Coefficient  int
	Target       int
	Topics       []string
}

// DefaultTarget is used when a stored record carries no target.
const DefaultTarget = 20

var infos = [subjectCount]Info{
	Mathematics: {
		Name:         "Matematik",
		MaxQuestions: 20,
		Coefficient:  3,
		Target:       20,
		Topics:       []string{"Sayılar", "Çarpanlar Katlar", "Kesirler", "Ondalık Gösterim", "Yüzdeler", "Geometri", "Cebir", "İstatistik"},
	},
	Science: {
		Name:         "Fen Bilimleri",
		MaxQuestions: 20,
		Coefficient:  3,
		Target:       20,
		Topics:       []string{"Madde ve Değişim", "Kuvvet ve Hareket", "Işık", "Ses", "Elektrik", "Güneş Sistemi", "Vücudumuz"},
	},
	Language: {
		Name:         "Türkçe",
		MaxQuestions: 20,
		Coefficient:  3,
		Target:       20,
		Topics:       []string{"Okuma Anlama", "Dilbilgisi", "Yazım Kuralları", "Noktalama", "Sözcük Bilgisi", "Anlatım Biçimleri"},
	},
	English: {
		Name:         "İngilizce",
		MaxQuestions: 10,
		Coefficient:  3,
		Target:       10,
		Topics:       []string{"Grammar", "Vocabulary", "Reading", "Listening", "Tenses", "Modal Verbs"},
	},
	Religion: {
		Name:         "Din Kültürü",
		MaxQuestions: 8,
		Coefficient:  2,
		Target:       8,
		Topics:       []string{"İbadet", "Ahlak", "Siyer", "Temel Bilgiler", "Peygamberler", "Kitaplar"},
	},
	History: {
		Name:         "İnkılap",
		MaxQuestions: 19,
		Coefficient:  2,
		Target:       19,
		Topics:       []string{"Osmanlı", "Kurtuluş Savaşı", "Atatürk İlkeleri", "Cumhuriyet Dönemi", "Devrimler"},
	},
}

// All returns the subjects in declared order.
func All() []Subject {
	out := make([]Subject, 0, subjectCount)
	for s := Subject(0); s < subjectCount; s++ {
		out = append(out, s)
	}
	return out
}

// Info returns the subject's configuration.
func (s Subject) Info() Info {
	return infos[s]
}

// Name returns the subject's stored key.
func (s Subject) Name() string {
	return infos[s].Name
}

// Parse resolves a stored subject name. The boolean reports whether the
// name is one of the six subjects.
func Parse(name string) (Subject, bool) {
	for s := Subject(0); s < subjectCount; s++ {
		if infos[s].Name == name {
			return s, true
		}
	}
	return 0, false
}

// HasTopic reports whether the topic belongs to the subject's fixed list.
func (s Subject) HasTopic(topic string) bool {
	for _, t := range infos[s].Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// TargetFor returns the session question target for a subject name, or
// DefaultTarget for unknown names.
func TargetFor(name string) int {
	if s, ok := Parse(name); ok {
		return infos[s].Target
	}
	return DefaultTarget
}

// MaxTotalNet is the ceiling for the total net goal: the sum over all
// subjects of maxQuestions times coefficient.
func MaxTotalNet() int {
	total := 0
	for s := Subject(0); s < subjectCount; s++ {
		total += infos[s].MaxQuestions * infos[s].Coefficient
	}
	return total
}
