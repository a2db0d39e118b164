package quiz

// Sample 返回内置的示例测验，可直接渲染或导出为模板。每次调用返回新的副本。
func Sample() *Document {
	q := func(text, a, b, c, d string) DocQuestion {
		return DocQuestion{
			Text:    ptr(text),
			Options: map[string]string{"A": a, "B": b, "C": c, "D": d},
		}
	}
	s := func(n int, answer, explanation string) DocSolution {
		return DocSolution{Number: &n, Answer: ptr(answer), Explanation: ptr(explanation)}
	}
	return &Document{
		Title:    ptr("Networking – Practice Quiz (5 Questions)"),
		Subtitle: ptr("Sample: Basic Concepts"),
		Questions: []DocQuestion{
			q("Which OSI layer is responsible for routing?", "Physical", "Network", "Transport", "Application"),
			q("Which protocol translates domain names to IP addresses?", "HTTP", "DNS", "FTP", "SSH"),
			q("Which device operates primarily at Layer 2 of the OSI model?", "Router", "Switch", "Firewall", "Server"),
			q("Which IP version uses 128-bit addresses?", "IPv4", "IPv6", "IPX", "ARP"),
			q("Which transport protocol provides reliable, connection-oriented delivery?", "ICMP", "UDP", "TCP", "ARP"),
		},
		Solutions: []DocSolution{
			s(1, "B", "Routing happens at the OSI Network layer (Layer 3)."),
			s(2, "B", "DNS resolves domain names to IP addresses."),
			s(3, "B", "Switches primarily operate at Layer 2 (Data Link)."),
			s(4, "B", "IPv6 uses 128-bit addresses."),
			s(5, "C", "TCP is reliable and connection-oriented."),
		},
	}
}

func ptr[T any](v T) *T { return &v }
