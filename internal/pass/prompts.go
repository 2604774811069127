package pass

import "fmt"

// allowedFeatures is the fixed vocabulary both rounds constrain feature
// choices to; the critic rubric references it verbatim.
const allowedFeatures = `["flow_bytes","packets","rate","iat","src_ip","dst_ip","src_port","dst_port","protocol","entropy","payload_len"]`

const jsonOnlyHint = "Return exactly ONE JSON object. No prose, no explanations, no markdown, no code fences.\n" +
	"If you cannot comply, output {}.\n"

const criticRubric = jsonOnlyHint + `
Return exactly: { "decision": "APPROVE" or "REVISE" }

You will receive two JSON objects below as PLANNER and RESEARCHER.

APPROVAL RUBRIC (deterministic):
- APPROVE only if ALL are true:
  1) Both JSONs are valid, PLANNER has "features"(3) and "steps"(>=2), RESEARCHER has "features"(3).
  2) All features in both JSONs belong to ` + allowedFeatures + `.
  3) Planner and Researcher share at least 2 out of 3 features (Jaccard >= 0.66).
  4) At least 2 of Planner's steps explicitly mention (by exact token) features used by Planner.
- Otherwise REVISE.
`

func plannerBaselinePrompt(seed int) string {
	return fmt.Sprintf(jsonOnlyHint+`
Return:
{
  "features": ["<name1>", "<name2>", "<name3>"],
  "steps": ["<step1>", "<step2>", "<step3>"]
}
Task: [seed=%d] Propose exactly 3 streaming features for malware triage and a 3-step plan that uses exactly those features.
Choose features ONLY from this allowed set (use exact tokens): %s.
`, seed, allowedFeatures)
}

func researcherBaselinePrompt(seed int) string {
	return fmt.Sprintf(jsonOnlyHint+`
Return:
{ "features": ["<name1>", "<name2>", "<name3>"] }
Task: [seed=%d] List exactly 3 streaming features (names only) computable in real time for malware triage.
Choose ONLY from this allowed set (use exact tokens): %s.
`, seed, allowedFeatures)
}

func plannerInfluencedPrompt() string {
	return fmt.Sprintf(jsonOnlyHint+`
Return:
{
  "features": ["<name1>", "<name2>", "<name3>"],
  "steps": ["<step1>", "<step2>"]
}
Refine the plan to reduce false positives and keep exactly 3 features consistent with the plan.
Each step MUST explicitly mention by name one or more of the chosen features.
Choose features ONLY from this allowed set (use exact tokens): %s.
`, allowedFeatures)
}

func researcherInfluencedPrompt() string {
	return fmt.Sprintf(jsonOnlyHint+`
Return:
{ "features": ["<name1>", "<name2>", "<name3>"] }
List exactly 3 minimal streaming features we can compute now.
Choose ONLY from this allowed set (use exact tokens): %s.
`, allowedFeatures)
}

// criticPrompt embeds both peer outputs verbatim so the rubric can be applied
// to exactly what was produced, malformed or not.
func criticPrompt(plannerOut, researcherOut string) string {
	return criticRubric + fmt.Sprintf("\nPLANNER:\n%s\n\nRESEARCHER:\n%s\n", plannerOut, researcherOut)
}

// featureConstraint pins the influenced planner to the baseline researcher's
// feature set, closing the cross-role feedback loop.
func featureConstraint(features string) string {
	return fmt.Sprintf(
		"\n\nConstraint: Use EXACTLY these three features from Researcher baseline "+
			"(use exact tokens, same order not required): [%s]. Do not rename them.", features)
}
