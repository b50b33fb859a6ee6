package batch

// DefaultPrompt is the default question for single-image analysis.
const DefaultPrompt = "What is in this image? Describe it in detail."

// SlidePrompt asks the model for the three catalogue fields an archivist
// cannot derive from the filename alone. The response contract (exact keys,
// JSON only) keeps the parser's strict path viable; the fallback chain
// handles models that wrap the object in prose or fences anyway.
const SlidePrompt = `Analyze this slide image and extract the following information in JSON format:

1. "EADUnitTitle": Extract all handwritten text, labels, or annotations visible on the slide mount or border. Include reference numbers, titles, or any written information. If none visible, use empty string.

2. "EADScope+Content": Provide a museum catalogue-style description of the photograph itself. Describe what is depicted in the image as you would for a museum or archive catalogue entry. Be detailed and professional. Focus on the subject matter, composition, and notable features of the photograph.

3. "EADUnitDate": Extract any dates mentioned on the slide (in handwriting or printed). This could be a year, full date, or date range. If no date is visible, use empty string.

Return ONLY valid JSON in this exact format:
{
  "EADUnitTitle": "text here",
  "EADScope+Content": "description here",
  "EADUnitDate": "date here"
}`
