package openai

// extractionPrompt instructs the model to tabulate the polymer properties
// found in a paper. Column names must match the response schema exactly.
const extractionPrompt = `Extract the data from the text in this paper, but extract the fields below as columns and tabulate them.

Structural
- aromatic_ring_count: count of aromatic rings in the polymer structure
- fused_ring_presence: presence of fused aromatic rings in the structure
- linkage_type: type of chemical bonds connecting polymer units
- steric_bulk: presence of bulky substituents affecting molecular structure
- degree_of_sulfonation_or_grafting: extent of sulfonation or grafting modifications
- cation_type: type of cation present in the polymer
- acidic_proton: presence of acidic protons in the structure
- acidic_proton_position: location of acidic protons in the structure

Morphological & Environmental
- water_uptake_percent: percentage of water absorbed by the material
- koh_uptake_percent: percentage of KOH solution absorbed
- free_volume_nm3_per_g: free volume per gram in cubic nanometers
- swelling_degree_alkaline: extent of swelling in alkaline conditions
- porosity_description: description of material's porous structure

Conductivity
- conductivity_oh_mS_per_cm: ionic conductivity in millisiemens per centimeter
- temperature_conductivity_tested: temperature range for conductivity testing
- koh_concentration_tested_M: KOH concentration used in testing (molarity)
- aging_time_in_alkaline_conditions: duration of aging in alkaline environment

Return every extracted sample as one row keyed by sample_id. Even if it's the
same sample, if the values are different, organize them into separate rows.`

// interpretPromptPrefix asks for a natural-language reading of an already
// extracted table.
const interpretPromptPrefix = "Interpret the following data and summarize it in a markdown table format:\n"
