package generate

// Fixed scaffold text used by the base assembly, the technique transforms and
// the post-processing stages.

const defaultPersona = "You are an AI assistant who analyzes the given requirements precisely and provides the best possible answer."

const expertPersonaFormat = "You are acting as %s and must provide professional, accurate answers."

const baseConstraints = `- Provide only accurate and reliable information
- Explicitly mark any information you are uncertain about
- Approach the task systematically, step by step
- Reflect every one of the user's specific requirements`

const baseThinking = `Approach the task systematically using these steps:
1. Requirement analysis: identify the core goal and the detailed requirements
2. Information organization: organize the provided 5W1H information
3. Approach selection: choose the best way to solve the task
4. Stepwise execution: build the answer in a logical order
5. Verification and improvement: check the answer for completeness and accuracy`

const baseExecution = `Follow all of the guidelines above and provide a complete, accurate answer that satisfies the requirements.
The answer must be clear and practical so the user can put it to use immediately.`

const formatJSONGuide = `Provide the answer in the following JSON structure:
{
  "summary": "core summary",
  "detailed_response": "detailed answer",
  "key_points": ["key point 1", "key point 2"],
  "recommendations": ["recommendation 1", "recommendation 2"],
  "confidence_level": "high/medium/low"
}`

const formatMarkdownGuide = "Structure the answer in markdown:\n" +
	"- Use clear headings and subheadings\n" +
	"- Emphasize important content in **bold**\n" +
	"- Organize information with lists or tables\n" +
	"- Put code or examples in ``` code blocks"

const formatStructuredGuide = `Answer in the following structured format:

**📋 Summary**
Summarize the core content in 2-3 sentences

**🔍 Detailed analysis**
Step-by-step detailed explanation

**💡 Key points**
• Key point 1
• Key point 2
• Key point 3

**🎯 Action plan**
Concrete execution steps or recommendations

**⚠️ Caveats**
Constraints or risks to consider (if applicable)`

const formatTextGuide = `Provide the answer as clear, well-organized text:
- Arrange information in a logical order
- Let each paragraph cover one main idea
- Include concrete, practical content
- Use numbers or bullet points for structure where needed`

const chainOfThoughtBlock = `<chain_of_thought>
Think through the problem step by step as follows:

1. **Understand the problem**: identify the requirements and the goal
2. **Analyze the information**: examine the provided information systematically
3. **Choose an approach**: select the best solution logically
4. **Execute step by step**: proceed in order, giving the rationale for each step
5. **Verify the result**: confirm the answer satisfies the requirements

Show your thought process explicitly at every step.
</chain_of_thought>

<reasoning>
Reason step by step following the thought process above, then answer.
</reasoning>`

const expertPersonaBlock = `<expert_persona>
As %s, bring the following expertise to bear:

• **Domain knowledge**: deep theoretical knowledge and hands-on experience in the field
• **Analytical thinking**: the ability to break down and solve complex problems systematically
• **Practical approach**: connect theory and practice into actionable solutions
• **Current trends**: awareness of the latest industry trends and best practices
• **Risk awareness**: identify and address potential problems and constraints early
</expert_persona>`

const expertApproachBlock = `<expert_approach>
Approach the task as an expert:

1. **Professional perspective**: expert-level depth rather than a generic answer
2. **Field experience**: concrete, practical advice grounded in real experience
3. **Multiple viewpoints**: examine the problem from several angles for a balanced solution
4. **Quality assurance**: take responsibility for accurate, trustworthy information
</expert_approach>`

const expertDeliverablesBlock = `<expert_deliverables>
Include the following in your answer:
• **Expert analysis**: in-depth analysis from the field's professional perspective
• **Practical application**: concrete methods that can be applied in the field
• **Risks**: potential problems to consider and how to respond to them
• **Best practices**: proven industry success stories or methodologies
• **Outlook**: where the field is heading and the relevant trends
</expert_deliverables>`

const genericExpertRole = "an expert in the relevant field"

const reflectionBlock = `After generating your answer, go through the following process:

**Phase 1: Initial answer**
[Write your answer first]

**Phase 2: Self-review**
Review the answer against these criteria:
- Accuracy: is the information correct?
- Completeness: does it fully answer the question?
- Clarity: is it explained in an easy-to-understand way?
- Practicality: is the content actually helpful?

**Phase 3: Improved final answer**
Present an improved final answer based on the review.`

const stepByStepBlock = `Approach the task step by step as follows:

**STEP 1: Understand the problem**
- Identify the core requirements
- Confirm the main constraints

**STEP 2: Gather and analyze information**
- Organize the necessary information
- Analyze the relevant factors

**STEP 3: Derive a solution**
- Review the possible options
- Select the best option

**STEP 4: Execution plan**
- Concrete execution steps
- Expected results and effects

**STEP 5: Verify and refine**
- How to verify the result
- Ways to improve

Answer with each step clearly separated.`

const ragRetrievedHeader = "# Retrieved reference information\n"

const ragRetrievedDirective = "# Retrieval-grounded answer\n" +
	"Answer the following question based on the retrieved information above. " +
	"Your answer must cite the sources of the information you referenced.\n\n"

const ragGenericScaffold = `First, let's review the background knowledge and current information related to this question.

**Phase 1: Search for relevant knowledge**
- Identify the core concepts and latest developments related to the question.
- Confirm trustworthy sources of information.

**Phase 2: Verify and integrate information**
- Evaluate the reliability of the retrieved information.
- Select the most relevant information.

**Phase 3: Generate an augmented answer**
- Provide an accurate, current answer based on the retrieved information.`

const ragCitation = "Cite the sources of the information you referenced in your answer."

const reactHeader = `# ReAct reasoning and acting

Think and act step by step in the following format:

**Thought 1**: [analysis of the current situation and plan for the next action]
**Action 1**: [a concrete action or tool use]
**Observation 1**: [the result of the action or the information obtained]

**Thought 2**: [further analysis based on the previous observation]
**Action 2**: [the next action]
**Observation 2**: [observe the result]

...repeat this process until you reach a final conclusion...

**Final Answer**: [the final answer]`

const reactFooter = "Think, act and answer systematically following the ReAct format above."

const chainExplicitHeader = "# Prompt chaining\n\nPerform the following steps in order to reach the final answer:\n\n"

const chainDependsFormat = "*This step uses the results of: %s*\n\n"

const chainExplicitFooter = "Combine the results obtained through all of the steps above and present the final answer."

const chainReuseDirective = "*In this step, you must make use of the results of the previous steps.*\n\n"

const chainSynthesizedFooterFormat = "Combine the analysis and results from all %d steps above into a complete, practical final answer.\n" +
	"State the key insight gained at each step and explain how they lead to the final conclusion."

// chainStepTitles and chainStepDescriptions are indexed by step number - 1.
var chainStepTitles = []string{
	"Problem analysis and understanding",
	"Information gathering and organization",
	"Approach design",
	"Key factor identification",
	"Solution development",
	"Verification and evaluation",
	"Improvement and optimization",
	"Execution planning",
}

const chainExtendedTitleFormat = "Extended analysis %d"

var chainStepDescriptions = []string{
	"Analyze %s in depth and clearly identify the core problems and requirements. Understand the nature and complexity of the problem and identify the main challenges to solve.",
	"Systematically gather and organize all information relevant to solving the problem. Use the 5W1H information to make the situation concrete and organize the background knowledge or data you need.",
	"Based on the gathered information, design the best approach and strategy for solving the problem. Review several possible methods and select the most effective one.",
	"Identify the elements at the heart of the problem and the important considerations. Determine success factors and risks, and set priorities.",
	"Based on the preceding analysis, develop a concrete, actionable solution. Present a creative yet practical solution and work out its details.",
	"Verify and evaluate the validity and effectiveness of the proposed solution. Check for potential problems and analyze the solution's strengths and weaknesses.",
	"Based on the verification results, improve and optimize the solution. Propose adjustments and complements that lead to a better outcome.",
	"Draw up a concrete execution plan for the final solution. Present a roadmap covering the execution steps, required resources and expected timeline.",
}

const chainExtendedDescription = "Building on the results of the previous steps, perform an additional in-depth analysis. Attempt a more detailed review and an approach from a complementary perspective."

const chainGenericContext = "the given problem"

const generatedKnowledgeHeader = `# Generated knowledge prompting

**Phase 1: Generate relevant knowledge**
First, generate the background knowledge, principles or concepts related to this problem:
- Core concepts
- Relevant principles or laws
- Similar cases or experiences
- Important considerations

**Phase 2: Apply the generated knowledge**
Using the knowledge generated above, answer the following problem:`

const generatedKnowledgeFooter = `**Phase 3: Knowledge-based reasoning**
Explain how the generated knowledge was used in the answer.`

const leastToMostHeader = `# Least-to-most prompting

We will solve this problem starting from its simplest element and gradually extending to the more complex parts.

**Phase 1: Identify the most basic element**
- Identify the simplest part at the core of the problem.

**Phase 2: Solve the basic element**
- Present a solution for the identified basic element.

**Phase 3: Extend incrementally**
- Building on the basic solution, add the more complex elements step by step.

**Phase 4: Integrate everything**
- Integrate all the elements into a complete solution.`

const leastToMostFooter = "Follow the phases above and work systematically from the simple to the complex."

const analogicalHeader = "# Analogical prompting\n\n"

const analogicalListIntro = "Solve the problem with reference to the following similar cases:\n\n"

const analogicalGenericScaffold = `Let's first think of situations or cases similar to this problem:

**Step 1: Find analogous cases**
- Look for situations or cases similar to this problem.
- Think about how similar problems were solved in other fields.

**Step 2: Apply the analogy**
- Analyze how the solution from the case you found could be applied to the current problem.

`

const analogicalSolveHeader = "**Step 3: Solve by analogy**\n"

const analogicalFooter = "Refer to the analogous cases above and present a creative, effective solution."

const stimulusHeader = "# Directional stimulus prompting\n\n"

const stimulusListIntro = "Use the following hints when answering:\n\n"

const stimulusGenericHints = "**Directional hints**: systematic approach, step-by-step analysis, multi-angle review, practical solutions\n\n"

const stimulusFooter = "Use the hints above as directional guidance when composing your answer."

const metaPromptingHeader = `# Meta prompting

First, let's design the best approach for solving this problem.

**Meta analysis 1: Classify the problem type**
- What type of problem is this? (analytical, creative, practical, ...)
- Which approach fits best?

**Meta analysis 2: Required reasoning steps**
- Which steps are needed to solve this problem?
- What kind of thinking does each step require?

**Meta analysis 3: Commit to a strategy**
- Based on the analysis above, establish the most effective strategy.

**The actual task**`

const metaPromptingFooter = "Apply the meta strategy established above and solve the problem systematically."

const activePromptHeader = `# Active prompting

Let's approach this problem from several perspectives to find the most suitable solution.

**Perspective 1: Conservative approach**
- Propose a solution from a perspective that prioritizes safe, proven methods.

**Perspective 2: Innovative approach**
- Propose a solution from a perspective that tries creative, new methods.

**Perspective 3: Pragmatic approach**
- Propose a solution from a perspective that weighs real-world constraints and efficiency.

**Uncertainty assessment**
Assess the confidence and uncertainty of each perspective's solution.

**Final selection**
Choose the most suitable approach and explain why.`

const stepByStepAddendum = "Explain it step by step, one point at a time."

const advancedReasoningBlock = `<advanced_reasoning>
Apply the following advanced reasoning techniques in your answer:

**1. Multi-layer analysis**
• Look beyond surface information for hidden patterns and relationships
• Consider both direct and indirect factors
• Distinguish short-term from long-term effects

**2. Hypothesis testing**
• Form several possible hypotheses and test the validity of each
• Weigh each hypothesis's strengths and weaknesses with falsifiable logic
• Draw evidence-based conclusions

**3. Systems thinking**
• Approach from the perspective of the whole system rather than individual parts
• Consider interactions and feedback loops
• Anticipate unexpected side effects or chain reactions

**4. Metacognition**
• Evaluate your own reasoning process objectively
• Explicitly identify biases and assumptions
• Explore alternative interpretations

**5. Probabilistic judgment**
• Acknowledge uncertainty and reason probabilistically
• Assess the likelihood and impact of several scenarios
• Balance risks against opportunities
</advanced_reasoning>

<reasoning_output>
Clearly present the key insights and logical grounds obtained through the reasoning process above.
</reasoning_output>`

// formatAddenda holds the short post-processing directive per format. Text
// has no entry.
var formatAddenda = map[string]string{
	"json":       "Structure the answer in JSON format.",
	"markdown":   "Write the answer in markdown format.",
	"structured": "Organize the answer in a structured form.",
}

const refinementHeader = "# Iterative refinement\n\n**First draft**\n"

const refinementCritique = `**First review and improvements**
Review the draft from the following perspectives:
- Completeness: are all requirements met?
- Accuracy: is the information correct and trustworthy?
- Clarity: is it easy to understand?
- Practicality: can it actually be applied?

**Improved final answer**
Present an improved final answer based on the review.`

const diversityBlock = `## Diversity guidelines
Consider the following to offer diverse, creative perspectives in your answer:

**1. Multi-angle approach**: look at the problem from several perspectives and offer different solutions
**2. Creative thinking**: include innovative ideas that go beyond the usual framing
**3. Alternatives**: propose 2-3 alternative approaches alongside the main answer
**4. Cross-domain fusion**: consider solutions that borrow cases or methods from other fields
**5. Scenario variety**: describe how the answer applies under different situations and conditions

Provide a rich, diverse answer based on the guidelines above.`

const tokenLimitFormat = `## Response length limit
**Important**: limit the answer to at most %d tokens.
- Focus on the core content and write concisely
- Minimize unnecessary elaboration
- Present the main points clearly
- Expected length: about %d words or fewer

Provide an efficient, compact answer.`
