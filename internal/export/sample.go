package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

var sampleTables = map[string][][]string{
	ConnectionsFile: {
		{colFirstName, colLastName, colEmail, colCompany, colPosition, colConnectedOn},
		{"Sarah", "Chen", "sarah@stripe.com", "Stripe", "Staff Engineer", "15 Jan 2024"},
		{"Mike", "Torres", "mike@acme.com", "Acme Corp", "VP Engineering", "20 Mar 2023"},
		{"Jennifer", "Liu", "jennifer@google.com", "Google", "Product Manager", "10 Jun 2022"},
		{"David", "Kim", "david@meta.com", "Meta", "AI Researcher", "05 Sep 2023"},
		{"Lisa", "Park", "lisa@startup.io", "TechStartup", "Founder", "12 Nov 2023"},
		{"James", "Wong", "james@amazon.com", "Amazon", "Solutions Architect", "18 Feb 2022"},
		{"Anna", "Lee", "anna@microsoft.com", "Microsoft", "Senior PM", "22 Jul 2024"},
		{"Chris", "Brown", "chris@openai.com", "OpenAI", "Research Engineer", "30 Aug 2023"},
		{"Rachel", "Green", "rachel@anthropic.com", "Anthropic", "ML Engineer", "14 Dec 2023"},
		{"Tom", "Wilson", "tom@netflix.com", "Netflix", "Engineering Manager", "08 Apr 2023"},
	},
	MessagesFile: {
		{colConversationID, colFrom, colTo, colDate, colContent},
		{"conv1", "Sarah Chen", "Me", "2024-12-15 10:30:00 UTC", "Hey! Great to connect. Would love to catch up about AI infrastructure sometime."},
		{"conv1", "Me", "Sarah Chen", "2024-12-16 14:20:00 UTC", "Absolutely! I've been working on some interesting agent architectures. Let's grab coffee next week?"},
		{"conv1", "Sarah Chen", "Me", "2024-12-17 09:15:00 UTC", "Sounds great! Tuesday works for me. There's a cool AI meetup happening too if you're interested."},
		{"conv2", "Mike Torres", "Me", "2024-11-20 11:00:00 UTC", "Thanks for the intro to that candidate - they were excellent!"},
		{"conv2", "Me", "Mike Torres", "2024-11-21 16:45:00 UTC", "Glad it worked out! Let me know if you need any other referrals."},
		{"conv3", "Jennifer Liu", "Me", "2024-05-10 08:30:00 UTC", "Let's catch up soon! I'd love to hear about your new venture."},
		{"conv4", "David Kim", "Me", "2024-10-05 13:20:00 UTC", "Your post on AI governance was really insightful. Would love to discuss further."},
		{"conv4", "Me", "David Kim", "2024-10-06 10:15:00 UTC", "Thanks David! I'm putting together a framework for AI audits - happy to share more details if interested."},
		{"conv5", "Lisa Park", "Me", "2024-08-15 15:00:00 UTC", "Congrats on the new role!"},
		{"conv6", "James Wong", "Me", "2023-06-20 09:00:00 UTC", "Great meeting you at the conference! Let's stay in touch."},
	},
	EndorsementsReceivedFile: {
		{colEndorserFirst, colEndorserLast, colSkill},
		{"Sarah", "Chen", "Python"},
		{"Sarah", "Chen", "Machine Learning"},
		{"Mike", "Torres", "Project Management"},
		{"Mike", "Torres", "Leadership"},
		{"David", "Kim", "AI"},
		{"Chris", "Brown", "Python"},
		{"Chris", "Brown", "AI"},
		{"Chris", "Brown", "Machine Learning"},
	},
	RecommendationsReceivedFile: {
		{colFirstName, colLastName, colRecommendation},
		{"Mike", "Torres", "Exceptional technical leadership and strategic thinking. Highly recommend for any AI initiative."},
	},
}

// SampleSelf is the identity the sample messages use for the exporting user.
const SampleSelf = "Me"

// WriteSample writes a small synthetic export into dir.
func WriteSample(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating sample directory: %w", err)
	}
	for name, rows := range sampleTables {
		if err := writeCSV(filepath.Join(dir, name), rows); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
