package extract

// Synthetic report texts reproducing the structure each operator's PDF yields
// after page-text extraction, with invented data.

const ypfText = `Res. 24-04 / Dec. 437-93 / Res. 177-10
Comunicado Incidente Nº 0000999999
Informe Preliminar Mendoza
INFORME DEL INCIDENTE
Fecha de ocurrencia: 10/10/2025
Hora de ocurrencia: 10:00
Fecha de alta de registro: 10/10/2025
Operador: YPF S.A.
Unidad económica: NEN - NEGOCIO MOCK
Área operativa: PHM - PTO.MOCK
Yacimiento: YACIMIENTO FICTICIO OESTE
Área concesionada: BLOQUE SIMULADO
Cuenca: NEUQUINA
Provincia: Mendoza
Tipo de permiso: Explotación
Instalación asociada: PLANTA AGUA MOCK
Nombre de la instalación: YPF.NQ.MOCK.A-3 / POZO INYECTOR
Tipo de instalación: CAÑERIA CONDUCCIÓN
Subtipo de instalación: Cañería conducción Agua
Subtipo de incidente: DERRAME DE AGUA DE PRODUCCIÓN
Tipo de evento causante: FALLA DE MATERIALES
Subtipo de evento causante: CORROSION
Magnitud del Incidente: Menor
Descripción: Se observa perdida en linea conducción pozo sumidero MOCK.X-3
INFORMACIÓN GEOGRÁFICA
Grados, minutos y decimales: Latitud (S): 37 ° / 20.000 ' Longitud (W): 69 ° / 3.000 '
Grados, minutos, segundos y decimales: Latitud (S): 37 ° / 20 ' / 00.0 '' Longitud (W): 69 ° / 3 ' / 00.0 ''
Grados y decimales: Latitud (S): 37.333333° Longitud (W): 69.050000°
VOLUMEN
Concentración de hidrocarburo (ppm): menor a 50
Volumen m3 derramado: 8.5000
% Agua contenido: 99.8000
Volumen m3 recuperado: 1.0000
ÁREA AFECTADA
Área m2: 1250.00
Recursos afectados: Suelo, Cauce aluvional
`

const petsudText = `N° DE COMUNICADO 999
Fecha de ocurrencia 12/2/2026
Hora de ocurrencia 15:00hs
Operador Petróleos Sudamericanos
Área operativa / concesión Área Ficticia Sur
Yacimiento Punta Mock
Cuenca Cuyana
Provincia Mendoza
Tipo de permiso Explotación
Instalación asociada Acueducto N°9 Mock
Tipo de instalación cañería inyeccion MOCK-191
Subtipo de incidente Crudo
Tipo de evento causante Falla de Materiales - Corrosión
Magnitud del Incidente Menor
Descripción de la rotura y afectación
La perdida se produce en Cañería conduccion MOCK-191, afecta locacion simulada.
Coordenadas x (latitud - S) 33°30'00,00"
Coordenadas y (Longitud - O) 68°38'00,00"
Concentración de hidrocarburo (ppm) Menor a 50ppm
Volumen m3 derramado 7
% AGUA DERRAMADA 100
Área m2 120
Suelo x
Cauce aluvional x
Agua superficial
Vegetacion
Otros
Medidas adoptadas Se delimitó la zona y se recuperó el fluido derramado.
`

const pluspetrolText = `PLANILLA DE COMUNICACIÓN DE ACCIDENTES EN LA ACTIVIDAD PETROLERA
OPERADOR: PLUSPETROL S.A.
COMUNICADO N°: 99/26
CÓDIGO: DC_DR_9999_26
FECHA: 10/02/2026
HORA: 19:00
CONCESION: MOCK
YACIMIENTO: MOCK
UBICACIÓN ESPECÍFICA: Línea de conducción a Batería Mock
TIPO DE CONTINGENCIA
BAJA
Derrame de agua de producción ■
COORDENADAS
X: 5858000 Y: 2552000 (Gauss-Krüger)
Lat.: -37.4200000
Long.: -68.4000000
DESCRIPCIÓN:
Se detecta pérdida sobre la línea de conducción. Vol. derramado: 0,015 m3
(97 % agua de producción). Volumen recuperado: 0 m3. Sup. Afectada: 0,5 m2
`

const aconcaguaText = `INFORME DE INCIDENTE
Operador ACONCAGUA ENERGIA S.A.
Fecha de Ocurrencia 08/09/2025
Hora de Ocurrencia 18:00
Nombre del área en recepción o Área Simulada
Nombre del yacimiento Yacimiento Mock Norte
Tipo de Incidente Derrame de agua de producción
Detalle del incidente Se constata pérdida de fluido en la locación, con
afectación menor de suelo.
Tipo de instalación involucrada Pozo inyector
Subtipo de instalación involucrada MOCK-28
Subtipo del evento causante Corrosión
Latitud Decimal -33.3400
Longitud Decimal -68.9800
Volumen de líquido derramado 1.5
Volumen de fluido recuperado 0
% de Agua 48
Superficie aprox. afectada 50
PPM 0
Volumen de gas 0
Reponsable de la Instalación Ing. Prueba Mock
Medidas adoptadas Se aisló el sector y se recuperó el fluido.
Dirección de e-mail contacto@mock.example
`

const pcrText = `INFORME PRELIMINAR DE INCIDENTE AMBIENTAL
Petroquímica Comodoro Rivadavia S.A.
Comunicado MDZ-99-2026- Batería Mock
Fecha: 18-02-2026
Hora Estimada: 8:00
Hora de Detección: 8:30
Concesión: Área Simulada Norte
Zona: Batería 216
Ubicación específica: Línea de conducción a pileta API
TIPO DE ACCIDENTE
Derrames de hidrocarburos ■
MAGNITUD DEL ACCIDENTE
BAJO
 ■
Lat. S= 34°57´00,0" S
Long. O= 69°31´00,0" O
Descripción del accidente:
Se produce pérdida con un volumen derramado bruto de 1,9 m3. Volumen derramado neto de hidrocarburo: 1,1 m3. Volumen recuperado neto: 0 m3. Con un 40 % de agua. La superficie afectada fue de unos 11 m2.
Superficie Afectada: 11 m2
Medidas adoptadas: Se bloqueó la línea y se recuperó el fluido. El tiempo estimado de saneamiento es 48 hs.
Responsable del comunicado: Sr. Mock Pérez
`
