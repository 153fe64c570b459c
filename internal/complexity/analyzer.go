// Package complexity assigns a plan to one of three complexity classes. The
// verdict is pure and deterministic: identical plan content always yields an
// identical analysis.
package complexity

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go-preplan/pkg/models"
)

const (
	linearStepLimit     = 15
	multiAgentStepLimit = 20
	facadeStepThreshold = 5
	domainBucketMin     = 3
	complexFormulaLimit = 2
)

var conditionPattern = regexp.MustCompile(`\b(if|when|then|else|satisfies|condition|select)\b`)

var aggregateNames = []string{"min", "max", "sum", "avg", "sqrt", "pow"}

var domainBuckets = map[string][]string{
	"electrical":     {"voltage", "current", "power", "impedance", "electrical"},
	"mechanical":     {"mechanical", "vibration", "rotation", "torque"},
	"thermal":        {"temperature", "pressure", "heat", "cooling"},
	"control":        {"control", "regulation", "automatic", "protection"},
	"communications": {"communication", "signal", "data", "network"},
}

// Classify inspects a plan and returns its complexity analysis. Rules are
// checked most to least demanding, so a plan that qualifies for multi-agent
// coordination is never downgraded by also looking linear.
func Classify(plan *models.Plan) *models.ComplexityAnalysis {
	analysis := &models.ComplexityAnalysis{
		PlanID:          plan.PlanID,
		StepCount:       len(plan.Steps),
		StepKinds:       countKinds(plan.Steps),
		HasDependencies: hasDependencies(plan.Steps),
		HasConditions:   hasConditions(plan.Steps),
		Variables:       variableComplexity(plan.Variables),
		Domains:         domains(plan),
	}

	switch {
	case analysis.StepCount > multiAgentStepLimit ||
		(analysis.StepKinds[models.StepRetrieve] > facadeStepThreshold &&
			analysis.StepKinds[models.StepToolCall] > facadeStepThreshold) ||
		len(analysis.Domains) >= domainBucketMin:
		analysis.Level = models.ComplexityMultiAgent
		analysis.Reason = "requires coordination across many steps or domains"
		analysis.RecommendedStrategy = "delegated"
	case analysis.HasConditions ||
		analysis.Variables.Tier == "complex" ||
		analysis.StepCount > linearStepLimit:
		analysis.Level = models.ComplexityBranch
		analysis.Reason = "contains conditional branching or complex calculation"
		analysis.RecommendedStrategy = "sequential"
	default:
		analysis.Level = models.ComplexityLinear
		analysis.Reason = "sequential execution without conditional logic"
		analysis.RecommendedStrategy = "sequential"
	}

	return analysis
}

func countKinds(steps []models.Step) map[models.StepKind]int {
	counts := map[models.StepKind]int{
		models.StepRetrieve: 0,
		models.StepToolCall: 0,
		models.StepCompute:  0,
	}
	for _, step := range steps {
		counts[step.Kind]++
	}
	return counts
}

// hasDependencies reports whether any step input references a symbol produced
// by an earlier step. Diagnostic only; it does not change the verdict.
func hasDependencies(steps []models.Step) bool {
	produced := map[string]bool{}
	for _, step := range steps {
		for _, value := range step.Inputs {
			s, isString := value.(string)
			if !isString || !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
				continue
			}
			if produced[s[1:len(s)-1]] {
				return true
			}
		}
		for _, out := range step.Outputs {
			produced[out] = true
		}
	}
	return false
}

func hasConditions(steps []models.Step) bool {
	for _, step := range steps {
		if conditionPattern.MatchString(strings.ToLower(step.Description)) {
			return true
		}
		if step.Formula != "" && conditionPattern.MatchString(strings.ToLower(step.Formula)) {
			return true
		}
	}
	return false
}

func variableComplexity(vars []models.Variable) models.VariableComplexity {
	vc := models.VariableComplexity{Tier: "simple"}
	for _, v := range vars {
		if v.Formula == "" {
			continue
		}
		vc.FormulaCount++
		lowered := strings.ToLower(v.Formula)
		for _, name := range aggregateNames {
			if strings.Contains(lowered, name) {
				vc.ComplexFormulas = append(vc.ComplexFormulas, v.Symbol)
				break
			}
		}
	}
	if len(vc.ComplexFormulas) > complexFormulaLimit {
		vc.Tier = "complex"
	} else if vc.FormulaCount > 0 {
		vc.Tier = "moderate"
	}
	return vc
}

// domains collects the keyword buckets hit by the plan's combined text.
func domains(plan *models.Plan) []string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", plan.Title, plan.Description)
	for _, step := range plan.Steps {
		sb.WriteByte(' ')
		sb.WriteString(step.Description)
	}
	text := strings.ToLower(sb.String())

	var hit []string
	for bucket, keywords := range domainBuckets {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				hit = append(hit, bucket)
				break
			}
		}
	}
	sort.Strings(hit)
	return hit
}
