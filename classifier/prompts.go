package classifier

import (
	"encoding/json"
	"fmt"
)

// analysisPrompt builds the classification instruction for Gemini. The JSON
// schema requested here is the wire contract models.Classification decodes.
func analysisPrompt(description string) string {
	return fmt.Sprintf(`You are a Senior Legal Expert and Station House Officer (SHO) in the Indian Police Force.
Your task is to analyze the incident description and provide a strictly legal classification under the Bharatiya Nyaya Sanhita (BNS) 2023 and Indian Penal Code (IPC).

CRITICAL INSTRUCTIONS:
1. **Exhaustive Mapping**: Identify ALL potential sections applicable. Do not be conservative. If it looks like theft, include Theft. If force was used, include Robbery/Snatching.
2. **BNS & IPC**: For every offense, provide the BNS 2023 Section AND the corresponding legacy IPC Section.
3. **Constitutionality**: Ensure all punishments mentioned are legally accurate as per the latest Sanhita.
4. **No "Unknowns"**: If details are vague, assume the most common scenario for such a complaint and provide sections for that.
5. **Never Return Empty**: You must provide at least one relevant section if the text describes any form of grievance.
6. Never declare guilt or innocence and never invent section numbers.

Incident Report: %q

Output Format (Strict JSON):
{
  "summary": "Professional police summary of facts.",
  "classification": {
    "type": "Specific Offense (e.g., Snatching / Theft / Assault)",
    "cognizable": true,
    "fir_required": true,
    "arrest_without_warrant": true,
    "priority": "High"
  },
  "sections": [
    {
      "section": "303(2)",
      "law": "BNS",
      "title": "Theft (Snatching)",
      "punishment": "Imprisonment up to 3 years and fine"
    }
  ],
  "guidance": {
    "immediate_action": "Police action required (e.g., Deploy team to spot, track IMEI)",
    "evidence_handling": "e.g., Collect CCTV footage, preserving crime scene",
    "legal_steps": "e.g., Register FIR immediately under 173 BNSS"
  },
  "missing_facts": ["Time of incident", "Description of accused"],
  "confidence_score": "High",
  "visual_analysis": "Forensic observations from the image, if one was provided"
}

Ensure the response is valid JSON only. Do not wrap in markdown code blocks.`, description)
}

// draftPrompt builds the FIR drafting instruction for Gemini
func draftPrompt(description string, analysis interface{}) string {
	analysisJSON, _ := json.Marshal(analysis)
	return fmt.Sprintf(`You are an expert police officer drafting a First Information Report (FIR) under Indian Law (BNS/IPC).
Using the following incident details, draft a formal FIR.

Incident Description: %q
Analysis Data: %s

The FIR should include:
1. Legal wording and appropriate sections.
2. Clear chronology of events.
3. Formal tone suitable for police records.
4. Placeholders for unknown details like [Time], [Location] if not provided.

Output ONLY the body of the FIR text. Do not include markdown formatting like ** or ##.`, description, analysisJSON)
}
