package rules

// registrySchema validates the shape of a rules document before it is
// trusted by the classification engine. Semantic cross-checks (default
// templates, known segment ids) happen in Validate afterwards.
const registrySchema = `{
  "type": "object",
  "required": ["segmentierung", "template_auswahl"],
  "properties": {
    "segmentierung": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "required": ["display_name", "branchen", "templates", "default_template"],
        "properties": {
          "display_name": {"type": "string", "minLength": 1},
          "branchen": {"type": "array", "items": {"type": "string"}},
          "jobtitel_keywords": {"type": "array", "items": {"type": "string"}},
          "unternehmensgroesse_min": {"type": "integer", "minimum": 0},
          "kernleistung": {"type": "string"},
          "templates": {"type": "array", "minItems": 1, "items": {"type": "string"}},
          "default_template": {"type": "string", "minLength": 1}
        }
      }
    },
    "template_auswahl": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "bedingungen"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "beschreibung": {"type": "string"},
          "bedingungen": {
            "type": "object",
            "properties": {
              "keywords_enthalten": {"type": "array", "items": {"type": "string"}},
              "branchen_enthalten": {"type": "array", "items": {"type": "string"}},
              "titel_enthalten": {"type": "array", "items": {"type": "string"}},
              "unternehmensgroesse_min": {"type": "integer", "minimum": 0},
              "unternehmensgroesse_max": {"type": "integer", "minimum": 1},
              "kein_firmenname": {"type": "boolean"}
            },
            "additionalProperties": false
          }
        }
      }
    }
  }
}`
